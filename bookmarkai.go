// Package bookmarkai provides a bookmark manager that enriches saved URLs
// with page content and AI-generated summaries, tags, and categories.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package bookmarkai
