// Package services implements the driving port interfaces.
// Services contain the editing session, selection and persistence logic
// and orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO. The document transforms they apply
// live in package document; services own state, timing and I/O.
package services
