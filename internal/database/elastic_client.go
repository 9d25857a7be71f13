package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/olivere/elastic/v7"

	"github.com/locvowork/skilltrack/internal/domain"
)

// EmployeeDoc mirrors domain.Employee for ES storage.
type EmployeeDoc struct {
	ID             int64     `json:"id"`
	EmpNo          string    `json:"emp_no"`
	Name           string    `json:"name"`
	Gender         string    `json:"gender,omitempty"`
	Plant          string    `json:"plant,omitempty"`
	AreaOfWork     string    `json:"area_of_work,omitempty"`
	Category       string    `json:"category,omitempty"`
	BatchNo        string    `json:"batch_no,omitempty"`
	SkillLevel     string    `json:"skill_level"`
	OverallPercent *float64  `json:"overall_percent,omitempty"`
	DOJ            string    `json:"doj,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewEmployeeDoc projects e into its index document.
func NewEmployeeDoc(e *domain.Employee) EmployeeDoc {
	doc := EmployeeDoc{
		ID:             e.ID,
		EmpNo:          e.EmpNo,
		Name:           e.Name,
		Gender:         e.Gender,
		Plant:          e.Plant,
		AreaOfWork:     e.AreaOfWork,
		Category:       e.Category,
		SkillLevel:     e.SkillLevel,
		OverallPercent: e.OverallPercent,
		CreatedAt:      e.CreatedAt,
	}
	if e.BatchNo != nil {
		doc.BatchNo = *e.BatchNo
	}
	if e.DOJ != nil {
		doc.DOJ = e.DOJ.String()
	}
	return doc
}

// ElasticSearchClient wraps olivere/elastic client.
type ElasticSearchClient struct {
	client *elastic.Client
	index  string
}

// NewElasticSearchClient creates a new client for Elasticsearch 7.x.
func NewElasticSearchClient(url, index string) (*ElasticSearchClient, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false), // Essential when using Docker or cloud
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &ElasticSearchClient{client: client, index: index}, nil
}

// IndexEmployee indexes an employee document using emp_no as ID.
func (es *ElasticSearchClient) IndexEmployee(ctx context.Context, e *domain.Employee) error {
	_, err := es.client.Index().
		Index(es.index).
		Id(e.EmpNo).
		BodyJson(NewEmployeeDoc(e)).
		Refresh("true"). // Make changes immediately searchable
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index employee %s: %w", e.EmpNo, err)
	}
	return nil
}

// SearchEmployees performs a full-text match on emp_no, name and batch_no.
func (es *ElasticSearchClient) SearchEmployees(ctx context.Context, text string, size int) ([]EmployeeDoc, error) {
	query := elastic.NewMultiMatchQuery(text, "emp_no", "name", "batch_no")

	searchResult, err := es.client.Search().
		Index(es.index).
		Query(query).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	docs := []EmployeeDoc{}
	for _, item := range searchResult.Hits.Hits {
		var doc EmployeeDoc
		if err := json.Unmarshal(item.Source, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// BulkIndexEmployees efficiently indexes multiple employees.
func (es *ElasticSearchClient) BulkIndexEmployees(ctx context.Context, employees []domain.Employee) error {
	bulkRequest := es.client.Bulk()

	for i := range employees {
		req := elastic.NewBulkIndexRequest().
			Index(es.index).
			Id(employees[i].EmpNo).
			Doc(NewEmployeeDoc(&employees[i]))
		bulkRequest = bulkRequest.Add(req)
	}

	if bulkRequest.NumberOfActions() == 0 {
		return nil
	}

	bulkResponse, err := bulkRequest.Refresh("true").Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}

	if bulkResponse.Errors {
		for _, item := range bulkResponse.Items {
			for _, op := range item {
				if op.Error != nil {
					return fmt.Errorf("bulk item %s failed: %s", op.Id, op.Error.Reason)
				}
			}
		}
	}

	return nil
}
