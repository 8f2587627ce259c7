// Package drive reads and writes the todo documents stored in Google Drive
// under a hierarchical path like "Todo/2025/1".
package drive

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"google.golang.org/api/drive/v3"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Store is the document collaborator backed by Drive.
type Store struct {
	srv *drive.Service
}

func NewStore(srv *drive.Service) *Store {
	return &Store{srv: srv}
}

// TodoPath builds the document path for a given month.
func TodoPath(folder string, year, month int) string {
	return fmt.Sprintf("%s/%d/%d", folder, year, month)
}

// MatchMonthToken reports whether a file name refers to the given month.
// Month documents appear as "1", "01", "1月" or "01月"; the numeric value is
// what matters.
func MatchMonthToken(name string, month int) bool {
	trimmed := strings.TrimSuffix(strings.TrimSpace(name), "月")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return false
	}
	return n == month
}

// ReadText fetches the document at path and returns its text content. The
// last path element is matched tolerantly when numeric (see
// MatchMonthToken); folder elements are matched by exact name.
func (s *Store) ReadText(path string) (string, error) {
	file, err := s.findFile(path)
	if err != nil {
		return "", err
	}
	if file == nil {
		return "", fmt.Errorf("document %q not found", path)
	}

	var body io.ReadCloser
	if strings.HasPrefix(file.MimeType, "application/vnd.google-apps.") {
		// Native Google documents must be exported, not downloaded.
		resp, err := s.srv.Files.Export(file.Id, "text/plain").Download()
		if err != nil {
			return "", fmt.Errorf("unable to export document %q: %w", path, err)
		}
		body = resp.Body
	} else {
		resp, err := s.srv.Files.Get(file.Id).Download()
		if err != nil {
			return "", fmt.Errorf("unable to download document %q: %w", path, err)
		}
		body = resp.Body
	}
	defer body.Close()

	b, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("unable to read document %q: %w", path, err)
	}
	return string(b), nil
}

// WriteText stores content at path, creating the file and any missing
// folders along the way. An existing document is overwritten.
func (s *Store) WriteText(path, content string) error {
	elems := splitPath(path)
	if len(elems) == 0 {
		return fmt.Errorf("empty document path")
	}

	parent := "root"
	for _, elem := range elems[:len(elems)-1] {
		id, err := s.findChild(parent, elem, true)
		if err != nil {
			return err
		}
		if id == "" {
			folder, err := s.srv.Files.Create(&drive.File{
				Name:     elem,
				MimeType: folderMimeType,
				Parents:  []string{parent},
			}).Do()
			if err != nil {
				return fmt.Errorf("unable to create folder %q: %w", elem, err)
			}
			id = folder.Id
		}
		parent = id
	}

	file, err := s.childFile(parent, elems[len(elems)-1])
	if err != nil {
		return err
	}
	if file != nil {
		_, err = s.srv.Files.Update(file.Id, &drive.File{}).Media(strings.NewReader(content)).Do()
		if err != nil {
			return fmt.Errorf("unable to update document %q: %w", path, err)
		}
		return nil
	}

	_, err = s.srv.Files.Create(&drive.File{
		Name:     elems[len(elems)-1],
		MimeType: "text/plain",
		Parents:  []string{parent},
	}).Media(strings.NewReader(content)).Do()
	if err != nil {
		return fmt.Errorf("unable to create document %q: %w", path, err)
	}
	return nil
}

// Exists reports whether a document is present at path.
func (s *Store) Exists(path string) (bool, error) {
	file, err := s.findFile(path)
	if err != nil {
		return false, err
	}
	return file != nil, nil
}

func (s *Store) findFile(path string) (*drive.File, error) {
	elems := splitPath(path)
	if len(elems) == 0 {
		return nil, fmt.Errorf("empty document path")
	}

	parent := "root"
	for _, elem := range elems[:len(elems)-1] {
		id, err := s.findChild(parent, elem, true)
		if err != nil {
			return nil, err
		}
		if id == "" {
			return nil, nil
		}
		parent = id
	}
	return s.childFile(parent, elems[len(elems)-1])
}

// childFile finds a non-folder child by name. Numeric names are matched as
// month tokens so "1" also finds "01" or "1月".
func (s *Store) childFile(parentID, name string) (*drive.File, error) {
	month, numeric := 0, false
	if n, err := strconv.Atoi(name); err == nil {
		month, numeric = n, true
	}

	query := fmt.Sprintf("'%s' in parents and mimeType != '%s' and trashed = false",
		parentID, folderMimeType)
	list, err := s.srv.Files.List().Q(query).Fields("files(id, name, mimeType)").Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list files: %w", err)
	}
	for _, f := range list.Files {
		if numeric && MatchMonthToken(f.Name, month) {
			return f, nil
		}
		if !numeric && f.Name == name {
			return f, nil
		}
	}
	return nil, nil
}

// findChild returns the id of a child with the given name, or "" if absent.
func (s *Store) findChild(parentID, name string, folder bool) (string, error) {
	op := "!="
	if folder {
		op = "="
	}
	query := fmt.Sprintf("name = '%s' and '%s' in parents and mimeType %s '%s' and trashed = false",
		escapeQuery(name), parentID, op, folderMimeType)
	list, err := s.srv.Files.List().Q(query).Fields("files(id, name)").Do()
	if err != nil {
		return "", fmt.Errorf("unable to list %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

func splitPath(path string) []string {
	var elems []string
	for _, e := range strings.Split(path, "/") {
		if e != "" {
			elems = append(elems, e)
		}
	}
	return elems
}

func escapeQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
