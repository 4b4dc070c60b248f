// Package distill extracts readable article content from HTML (local
// files or live URLs) and materializes the results as flat, collision-safe
// artifacts in an output directory, together with an auditable manifest of
// each batch run.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., trafilatura/, sqlite/, gemini/).
package distill
