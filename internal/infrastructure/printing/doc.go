// Package printing turns a fulfillment route into a PDF of shipping labels
// and keeps the result where the API can serve it again.
//
// RouteLabelPrinter drives the pipeline: LabelTemplate produces HTML, a
// PDFRenderer (headless Chrome via ChromedpRenderer) prints it, and a
// LabelStorage (local disk, or S3 from the storage package) persists it
// under {year}/{month}/{route_id}.pdf.
package printing
