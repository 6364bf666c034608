package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"iptv-storefront/internal/dto"
	"iptv-storefront/internal/repository"
)

type ClientService interface {
	List(ctx context.Context, page, limit int, search string) (*dto.ClientListResponse, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	Delete(ctx context.Context, clientID string) error
}

type clientServiceImpl struct {
	clientDataRepo repository.ClientDataRepository
}

func NewClientService(clientDataRepo repository.ClientDataRepository) ClientService {
	return &clientServiceImpl{
		clientDataRepo: clientDataRepo,
	}
}

func (s *clientServiceImpl) List(ctx context.Context, page, limit int, search string) (*dto.ClientListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	clients, total, err := s.clientDataRepo.List(ctx, search, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}

	return &dto.ClientListResponse{
		Clients: clients,
		Total:   total,
		Page:    page,
		Pages:   pages,
	}, nil
}

// ExportCSV renders every client row as CSV: header plus one line per client,
// fields quoted per RFC 4180 when they contain commas, quotes or newlines.
func (s *clientServiceImpl) ExportCSV(ctx context.Context) ([]byte, error) {
	clients, err := s.clientDataRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch clients: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ID", "Full Name", "Email", "Region", "Source", "Date"}); err != nil {
		return nil, err
	}

	for _, c := range clients {
		source := c.Source
		if source == "" {
			source = "website"
		}
		record := []string{
			c.ID,
			c.FullName,
			c.Email,
			c.Region,
			source,
			c.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *clientServiceImpl) Delete(ctx context.Context, clientID string) error {
	return s.clientDataRepo.Delete(ctx, clientID)
}
