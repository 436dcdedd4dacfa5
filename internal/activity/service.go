// Package activity owns the content lifecycle: row mutations coordinated
// with blob uploads and page revalidation.
package activity

import (
	"errors"
	"fmt"
	"log"
	"time"

	"charitysite/internal/blob"
	"charitysite/internal/entity"
	"charitysite/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrValidation = errors.New("title and description are required")
	ErrNotFound   = errors.New("activity not found")
	ErrUpload     = errors.New("failed to upload images")
)

// File is one uploaded form file. Zero-length files are skipped, matching
// empty file inputs submitted by the browser.
type File struct {
	Name    string
	Content []byte
}

type Store interface {
	Insert(a entity.Activity) error
	Update(a entity.Activity) error
	Delete(id string) error
	GetByID(id string) (entity.Activity, error)
	List() ([]entity.Activity, error)
}

// Revalidator is the staleness signal to the rendering layer: every named
// path must be re-rendered before it is served again.
type Revalidator interface {
	Revalidate(paths ...string)
}

type Service struct {
	rows  Store
	blobs blob.Uploader
	pages Revalidator
	now   func() time.Time
}

func NewService(rows Store, blobs blob.Uploader, pages Revalidator) *Service {
	return &Service{
		rows:  rows,
		blobs: blobs,
		pages: pages,
		now:   time.Now,
	}
}

// Add uploads every file, then inserts the row. An upload failure aborts the
// whole operation with no row written.
func (s *Service) Add(title, description, youtubeLink string, files []File) (entity.Activity, error) {
	if title == "" || description == "" {
		return entity.Activity{}, ErrValidation
	}

	urls, err := s.uploadAll(files)
	if err != nil {
		return entity.Activity{}, err
	}

	now := s.now()
	act := entity.Activity{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		YoutubeLink: youtubeLink,
		Images:      urls,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.rows.Insert(act); err != nil {
		return entity.Activity{}, fmt.Errorf("insert activity: %w", err)
	}

	s.pages.Revalidate("/", "/activities", "/admin/activities")
	return act, nil
}

// Update overwrites title, description and link. With keepExisting the
// current image list is extended by the new uploads; without it every
// existing blob is deleted (best effort) and the list starts empty.
func (s *Service) Update(id, title, description, youtubeLink string, files []File, keepExisting bool) (entity.Activity, error) {
	if title == "" || description == "" {
		return entity.Activity{}, ErrValidation
	}

	existing, err := s.rows.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return entity.Activity{}, ErrNotFound
	}
	if err != nil {
		return entity.Activity{}, fmt.Errorf("fetch activity: %w", err)
	}

	var urls []string
	if keepExisting {
		urls = append(urls, existing.Images...)
	} else {
		s.deleteAll(existing.Images)
	}

	uploaded, err := s.uploadAll(files)
	if err != nil {
		return entity.Activity{}, err
	}
	urls = append(urls, uploaded...)

	act := existing
	act.Title = title
	act.Description = description
	act.YoutubeLink = youtubeLink
	act.Images = urls
	act.UpdatedAt = s.now()

	if err := s.rows.Update(act); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.Activity{}, ErrNotFound
		}
		return entity.Activity{}, fmt.Errorf("update activity: %w", err)
	}

	s.pages.Revalidate("/", "/activities", "/admin/activities", "/admin/activities/edit/"+id)
	return act, nil
}

// Delete attempts to remove every blob first, then deletes the row. The row
// deletion is authoritative even when blob cleanup partially fails.
func (s *Service) Delete(id string) error {
	existing, err := s.rows.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("fetch activity: %w", err)
	}

	s.deleteAll(existing.Images)

	if err := s.rows.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete activity: %w", err)
	}

	s.pages.Revalidate("/", "/activities", "/admin/activities")
	return nil
}

func (s *Service) Get(id string) (entity.Activity, error) {
	act, err := s.rows.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return entity.Activity{}, ErrNotFound
	}
	return act, err
}

func (s *Service) List() ([]entity.Activity, error) {
	return s.rows.List()
}

func (s *Service) uploadAll(files []File) ([]string, error) {
	var urls []string
	for _, f := range files {
		if len(f.Content) == 0 {
			continue
		}

		key := fmt.Sprintf("activities/%d-%s", s.now().UnixMilli(), f.Name)
		url, err := s.blobs.Put(key, f.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpload, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// deleteAll is best effort: failures are logged and never abort the
// surrounding row mutation.
func (s *Service) deleteAll(urls []string) {
	for _, u := range urls {
		if err := s.blobs.Delete(u); err != nil {
			log.Printf("delete blob %s: %v", u, err)
		}
	}
}

// LogRevalidator names the stale paths in the log. Actual page caching is the
// rendering layer's concern.
type LogRevalidator struct{}

func (LogRevalidator) Revalidate(paths ...string) {
	log.Printf("revalidate: %v", paths)
}
