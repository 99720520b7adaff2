// Package es 提供了与 Elasticsearch 交互的客户端功能。
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"

	"folio-go/internal/config"
	"folio-go/internal/model"
	"folio-go/pkg/log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ESClient *elasticsearch.Client

// InitES 初始化 Elasticsearch 客户端并确保站点搜索索引存在。
func InitES(esCfg config.ElasticsearchConfig) error {
	cfg := elasticsearch.Config{
		Addresses: []string{esCfg.Addresses},
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return err
	}
	ESClient = client
	return createIndexIfNotExists(esCfg.IndexName)
}

// createIndexIfNotExists 检查索引是否存在，不存在则按站点搜索的映射创建。
func createIndexIfNotExists(indexName string) error {
	res, err := ESClient.Indices.Exists([]string{indexName})
	if err != nil {
		log.Errorf("检查索引是否存在时出错: %v", err)
		return err
	}
	defer res.Body.Close()

	if !res.IsError() && res.StatusCode == http.StatusOK {
		log.Infof("索引 '%s' 已存在", indexName)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		log.Errorf("检查索引 '%s' 时收到意外的状态码: %d", indexName, res.StatusCode)
		return fmt.Errorf("检查索引是否存在时收到意外的状态码: %d", res.StatusCode)
	}

	// 站点搜索只做全文检索：博客文章与项目共用一个索引，用 doc_type 区分
	mapping := `{
		"mappings": {
			"properties": {
				"doc_type": { "type": "keyword" },
				"ref_id": { "type": "long" },
				"slug": { "type": "keyword" },
				"title": { "type": "text" },
				"summary": { "type": "text" },
				"content": { "type": "text" },
				"tags": { "type": "keyword" },
				"published": { "type": "boolean" }
			}
		}
	}`

	createRes, err := ESClient.Indices.Create(indexName, ESClient.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))))
	if err != nil {
		return err
	}
	defer createRes.Body.Close()
	if createRes.IsError() {
		return fmt.Errorf("创建索引失败: %s", createRes.String())
	}
	log.Infof("索引 '%s' 创建成功", indexName)
	return nil
}

// IndexDocument 将一条搜索文档写入索引（同 ID 覆盖）。
func IndexDocument(ctx context.Context, indexName string, doc model.SearchDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: doc.DocID(),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, ESClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("写入搜索文档失败: %s", res.String())
	}
	return nil
}

// DeleteDocument 从索引中删除一条搜索文档，文档不存在视为成功。
func DeleteDocument(ctx context.Context, indexName string, docType string, refID uint) error {
	req := esapi.DeleteRequest{
		Index:      indexName,
		DocumentID: fmt.Sprintf("%s-%d", docType, refID),
	}
	res, err := req.Do(ctx, ESClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("删除搜索文档失败: %s", res.String())
	}
	return nil
}

// Search 在索引中执行 multi_match 全文查询，只返回已发布的内容。
func Search(ctx context.Context, indexName, query string, size int) ([]model.SearchDocument, error) {
	searchBody := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"title^3", "summary^2", "content", "tags"},
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"published": true},
				},
			},
		},
	}

	body, err := json.Marshal(searchBody)
	if err != nil {
		return nil, err
	}

	res, err := ESClient.Search(
		ESClient.Search.WithContext(ctx),
		ESClient.Search.WithIndex(indexName),
		ESClient.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("搜索请求失败: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source model.SearchDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("解析搜索响应失败: %w", err)
	}

	docs := make([]model.SearchDocument, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}
