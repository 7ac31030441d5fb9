// internal/service/importer.go
package service

import (
    "encoding/csv"
    "fmt"
    "io"
    "strings"

    "github.com/rs/zerolog"
    "github.com/xuri/excelize/v2"

    appErrors "github.com/blasthq/blast-backend/internal/errors"
    "github.com/blasthq/blast-backend/internal/model"
)

// columnAliases maps recognized header names (case-sensitive) to the
// normalized field name.
var columnAliases = map[string]string{
    "Name":    "name",
    "Email":   "email",
    "Phone":   "phone",
    "Company": "company",
    "City":    "city",
    "Tags":    "tags",
}

// ClientUpserter is the store dependency of the importer.
type ClientUpserter interface {
    UpsertByEmailPhone(c *model.Client) (created bool, err error)
}

// Importer turns an uploaded CSV or spreadsheet into client records.
type Importer struct {
    Clients ClientUpserter
    Log     zerolog.Logger
}

// ImportFile parses the file, upserts one client per row keyed by the
// literal (email, phone) pair, and returns the number of rows imported
// plus the per-row errors. The count covers successful upserts only; a
// row whose upsert errors is reported in errs and not counted.
//
// A file whose header lacks a "name" column (after alias normalization)
// aborts with ErrMissingColumn before any row is touched.
func (im *Importer) ImportFile(filename string, r io.Reader) (count int, errs []string, err error) {
    rows, err := readRows(filename, r)
    if err != nil {
        return 0, nil, err
    }
    if len(rows) == 0 {
        return 0, nil, appErrors.NewMissingColumn("name")
    }

    cols := map[string]int{}
    for i, header := range rows[0] {
        header = strings.TrimSpace(header)
        if normalized, ok := columnAliases[header]; ok {
            header = normalized
        }
        cols[header] = i
    }
    if _, ok := cols["name"]; !ok {
        return 0, nil, appErrors.NewMissingColumn("name")
    }

    errs = []string{}
    for n, row := range rows[1:] {
        client := &model.Client{
            Name:    cell(row, cols, "name"),
            Email:   optionalCell(row, cols, "email"),
            Phone:   optionalCell(row, cols, "phone"),
            Company: cell(row, cols, "company"),
            City:    cell(row, cols, "city"),
            Tags:    parseTags(cell(row, cols, "tags")),
        }
        if client.Name == "" {
            client.Name = "Unknown"
        }

        created, err := im.Clients.UpsertByEmailPhone(client)
        if err != nil {
            errs = append(errs, fmt.Sprintf("row %d: %v", n+2, err))
            continue
        }
        im.Log.Debug().Int("client_id", client.ID).Bool("created", created).Msg("imported client row")
        count++
    }
    return count, errs, nil
}

// readRows loads the tabular content: encoding/csv for .csv uploads,
// excelize (first sheet) for anything else.
func readRows(filename string, r io.Reader) ([][]string, error) {
    if strings.HasSuffix(strings.ToLower(filename), ".csv") {
        reader := csv.NewReader(r)
        reader.FieldsPerRecord = -1
        rows, err := reader.ReadAll()
        if err != nil {
            return nil, fmt.Errorf("parse csv: %w", err)
        }
        return rows, nil
    }

    f, err := excelize.OpenReader(r)
    if err != nil {
        return nil, fmt.Errorf("open spreadsheet: %w", err)
    }
    defer f.Close()

    rows, err := f.GetRows(f.GetSheetName(0))
    if err != nil {
        return nil, fmt.Errorf("read spreadsheet: %w", err)
    }
    return rows, nil
}

// parseTags splits a comma-separated cell into trimmed tags.
func parseTags(raw string) []string {
    if strings.TrimSpace(raw) == "" {
        return []string{}
    }
    parts := strings.Split(raw, ",")
    tags := make([]string, 0, len(parts))
    for _, p := range parts {
        if t := strings.TrimSpace(p); t != "" {
            tags = append(tags, t)
        }
    }
    return tags
}

func cell(row []string, cols map[string]int, field string) string {
    idx, ok := cols[field]
    if !ok || idx >= len(row) {
        return ""
    }
    return strings.TrimSpace(row[idx])
}

func optionalCell(row []string, cols map[string]int, field string) *string {
    v := cell(row, cols, field)
    if v == "" {
        return nil
    }
    return &v
}
