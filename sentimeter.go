// Package sentimeter classifies the comments of a rendered video page by
// sentiment. It extracts comment texts from the page, submits them in one
// batch to a remote classification service, and keeps the returned
// per-comment results in a filterable view.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package sentimeter
