package database

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/skilltrack/internal/domain"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

func newFakeElastic(t *testing.T, respond func(r *http.Request) string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, respond(r))
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func TestElasticSearchClient_IndexEmployee(t *testing.T) {
	srv, reqs := newFakeElastic(t, func(r *http.Request) string {
		return `{"_index":"employees","_id":"E001","result":"created"}`
	})

	es, err := NewElasticSearchClient(srv.URL, "employees")
	require.NoError(t, err)

	batch := "B7"
	err = es.IndexEmployee(context.Background(), &domain.Employee{ID: 1, EmpNo: "E001", Name: "John", BatchNo: &batch, SkillLevel: "sl2"})
	require.NoError(t, err)

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, "/employees/_doc/E001", got.path)

	var doc EmployeeDoc
	require.NoError(t, json.Unmarshal([]byte(got.body), &doc))
	assert.Equal(t, "John", doc.Name)
	assert.Equal(t, "B7", doc.BatchNo)
	assert.Equal(t, "sl2", doc.SkillLevel)
}

func TestElasticSearchClient_BulkIndexEmployees(t *testing.T) {
	tests := map[string]struct {
		response string
		wantErr  bool
	}{
		"all items succeed": {
			response: `{"took":1,"errors":false,"items":[{"index":{"_index":"employees","_id":"E001","status":201}},{"index":{"_index":"employees","_id":"E002","status":201}}]}`,
		},
		"item failure is reported": {
			response: `{"took":1,"errors":true,"items":[{"index":{"_index":"employees","_id":"E001","status":400,"error":{"type":"mapper_parsing_exception","reason":"bad field"}}}]}`,
			wantErr:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, reqs := newFakeElastic(t, func(r *http.Request) string { return tt.response })
			es, err := NewElasticSearchClient(srv.URL, "employees")
			require.NoError(t, err)

			err = es.BulkIndexEmployees(context.Background(), []domain.Employee{
				{EmpNo: "E001", Name: "A"},
				{EmpNo: "E002", Name: "B"},
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "bad field")
				return
			}
			require.NoError(t, err)
			require.Len(t, *reqs, 1)
			assert.Equal(t, "/_bulk", (*reqs)[0].path)
			assert.Equal(t, 2, strings.Count((*reqs)[0].body, `"_id":`))
		})
	}
}

func TestElasticSearchClient_BulkIndexEmptyIsNoop(t *testing.T) {
	srv, reqs := newFakeElastic(t, func(r *http.Request) string { return `{}` })
	es, err := NewElasticSearchClient(srv.URL, "employees")
	require.NoError(t, err)

	require.NoError(t, es.BulkIndexEmployees(context.Background(), nil))
	assert.Empty(t, *reqs)
}

func TestElasticSearchClient_SearchEmployees(t *testing.T) {
	srv, reqs := newFakeElastic(t, func(r *http.Request) string {
		return `{"took":1,"hits":{"total":{"value":1,"relation":"eq"},"hits":[{"_index":"employees","_id":"E001","_source":{"id":1,"emp_no":"E001","name":"John","skill_level":"sl1"}}]}}`
	})
	es, err := NewElasticSearchClient(srv.URL, "employees")
	require.NoError(t, err)

	docs, err := es.SearchEmployees(context.Background(), "john", 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "E001", docs[0].EmpNo)

	require.Len(t, *reqs, 1)
	assert.Equal(t, "/employees/_search", (*reqs)[0].path)
	assert.Contains(t, (*reqs)[0].body, "multi_match")
}
