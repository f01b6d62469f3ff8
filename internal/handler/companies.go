package handler

import (
	"github.com/deppfellow/jobboard/internal/model"
	"github.com/deppfellow/jobboard/internal/server"
	"github.com/deppfellow/jobboard/internal/service"
	"github.com/labstack/echo/v4"
)

type CompanyHandler struct {
	Handler
	companies *service.CompanyService
}

func NewCompanyHandler(s *server.Server, companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		Handler:   NewHandler(s),
		companies: companies,
	}
}

type CompaniesResponse struct {
	Companies []model.Company `json:"companies"`
}

type CompanyResponse struct {
	Company model.Company `json:"company"`
}

type DeletedCompanyResponse struct {
	Deleted string `json:"deleted"`
}

func (h *CompanyHandler) ListCompanies(c echo.Context, req *ListCompaniesRequest) (CompaniesResponse, error) {
	companies, err := h.companies.List(c.Request().Context(), req.Criteria())
	if err != nil {
		return CompaniesResponse{}, err
	}
	return CompaniesResponse{Companies: companies}, nil
}

func (h *CompanyHandler) GetCompany(c echo.Context, req *CompanyHandleRequest) (CompanyResponse, error) {
	company, err := h.companies.Get(c.Request().Context(), req.Handle)
	if err != nil {
		return CompanyResponse{}, err
	}
	return CompanyResponse{Company: company}, nil
}

func (h *CompanyHandler) CreateCompany(c echo.Context, req *CreateCompanyRequest) (CompanyResponse, error) {
	company, err := h.companies.Create(c.Request().Context(), req.NewCompany)
	if err != nil {
		return CompanyResponse{}, err
	}
	return CompanyResponse{Company: company}, nil
}

func (h *CompanyHandler) UpdateCompany(c echo.Context, req *UpdateCompanyRequest) (CompanyResponse, error) {
	company, err := h.companies.Update(c.Request().Context(), req.Handle, req.Changes)
	if err != nil {
		return CompanyResponse{}, err
	}
	return CompanyResponse{Company: company}, nil
}

func (h *CompanyHandler) DeleteCompany(c echo.Context, req *CompanyHandleRequest) (DeletedCompanyResponse, error) {
	deleted, err := h.companies.Remove(c.Request().Context(), req.Handle)
	if err != nil {
		return DeletedCompanyResponse{}, err
	}
	return DeletedCompanyResponse{Deleted: deleted}, nil
}
