// Package model holds the job board's records and the criteria used to search them.
package model
