// Package models contains the GORM persistence models for the institute
// back end. Domain aggregates stay free of table mappings; each model
// converts to and from its aggregate with ToDomain / XxxModelFromDomain.
//
// Tables:
//   - academic.go: courses, students
//   - fee.go: fee_ledgers, payment_attempts
//   - exam.go: exams, exam_results
//   - certification.go: certificates
package models
