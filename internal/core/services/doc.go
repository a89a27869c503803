// Package services implements the application core: the ingestion and
// query pipelines, session handling and the document catalog surface.
package services
