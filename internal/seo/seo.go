package seo

import (
    "strings"

    "finitefield.org/docsite/internal/content"
)

// Meta is the document head metadata for one page.
type Meta struct {
    Title       string
    Description string
    Canonical   string
    OG          OpenGraph
}

type OpenGraph struct {
    Title       string
    Description string
    Type        string
    SiteName    string
}

// ForPage builds head metadata. Canonical is left empty when baseURL is.
func ForPage(siteName, baseURL string, page content.Page) Meta {
    title := siteName
    if page.Title != "" && siteName != "" {
        title = page.Title + " – " + siteName
    } else if page.Title != "" {
        title = page.Title
    }
    m := Meta{
        Title:       title,
        Description: page.Description,
        OG: OpenGraph{
            Title:       firstNonEmpty(page.Title, siteName),
            Description: page.Description,
            Type:        "article",
            SiteName:    siteName,
        },
    }
    if base := strings.TrimRight(strings.TrimSpace(baseURL), "/"); base != "" && page.ID != "" {
        m.Canonical = base + "/" + page.ID
    }
    return m
}

func firstNonEmpty(values ...string) string {
    for _, v := range values {
        if strings.TrimSpace(v) != "" {
            return v
        }
    }
    return ""
}
