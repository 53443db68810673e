// Package folio migrates portfolio media off a legacy site builder.
// It fetches the legacy site's pages, matches images to named portfolio
// projects, downloads them into the new site's asset tree, scrapes
// case-study pages into markdown, and generates favicon assets.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package folio
