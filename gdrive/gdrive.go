// Package gdrive lists the spreadsheets in a Google Drive folder and exports them as CSV.
package gdrive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"

	"github.com/mjsigg/tkd-project-poller/checkpoint"
)

const (
	SpreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
	CSVMimeType         = "text/csv"
)

// File is a reference to a document in the watched folder.
type File struct {
	ID       string
	Name     string
	Modified time.Time
}

// Folder is the Drive folder being polled.
type Folder struct {
	service      *drive.Service
	id           string
	sharedDrives bool
}

func NewFolder(service *drive.Service, id string, sharedDrives bool) *Folder {
	return &Folder{
		service:      service,
		id:           id,
		sharedDrives: sharedDrives,
	}
}

func (f *Folder) ID() string {
	return f.id
}

// Query returns the Drive search expression matching the spreadsheets in a folder that were
// modified after a point in time.
func Query(folder string, since time.Time) string {
	return fmt.Sprintf(`"%s" in parents and mimeType = '%s' and trashed = false and modifiedTime > '%s'`,
		escape(folder),
		SpreadsheetMimeType,
		checkpoint.Format(since))
}

// List returns the spreadsheets in the folder modified after 'since', in the order returned
// by Drive.
func (f *Folder) List(ctx context.Context, since time.Time) ([]File, error) {
	q := Query(f.id, since)
	files := []File{}
	page := ""

	for {
		call := f.service.Files.List().
			Q(q).
			Fields("nextPageToken", "files(id, name, modifiedTime)").
			Context(ctx)

		if f.sharedDrives {
			call.SupportsAllDrives(true).IncludeItemsFromAllDrives(true)
		}

		if page != "" {
			call.PageToken(page)
		}

		list, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("unable to list files in folder %s (%w)", f.id, err)
		}

		for _, file := range list.Files {
			files = append(files, File{
				ID:       file.Id,
				Name:     file.Name,
				Modified: modified(file.ModifiedTime),
			})
		}

		if page = list.NextPageToken; page == "" {
			break
		}
	}

	return files, nil
}

// Export downloads a spreadsheet as CSV. Drive exports the first worksheet only.
func (f *Folder) Export(ctx context.Context, id string) (string, error) {
	response, err := f.service.Files.Export(id, CSVMimeType).Context(ctx).Download()
	if err != nil {
		return "", fmt.Errorf("unable to export file %s (%w)", id, err)
	}

	defer response.Body.Close()

	b, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("error reading export of file %s (%w)", id, err)
	}

	return string(b), nil
}

func escape(v string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(v)
}

func modified(v string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t.UTC()
	}

	return time.Time{}
}
