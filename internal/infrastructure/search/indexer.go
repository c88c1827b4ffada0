// Package search mirrors committed records into Elasticsearch so they can be
// explored outside the API. The API itself never reads from it.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

type Indexer struct {
	es      *elasticsearch.Client
	timeout time.Duration
}

func NewIndexer(es *elasticsearch.Client) *Indexer {
	return &Indexer{es: es, timeout: 3 * time.Second}
}

// Index upserts doc under id. A non-2xx response is returned as an error.
func (i *Indexer) Index(ctx context.Context, index, id string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: index, DocumentID: id, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index %s/%s: %s", index, id, res.Status())
	}
	return nil
}
