package vectordb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bugsurgeon/gh-surgeon/pkg/models"
	"github.com/qdrant/go-client/qdrant"
)

// Search finds similar incidents in a collection. Closed incidents get their
// score scaled by closedWeight so resolved reports rank slightly lower.
func (c *Client) Search(ctx context.Context, collection string, vector []float32, limit int, threshold float64, closedWeight float64) ([]models.SimilarIncident, error) {
	return c.search(ctx, collection, vector, limit, threshold, closedWeight, nil)
}

// SearchExcluding searches while excluding one incident (the report itself)
// from the results.
func (c *Client) SearchExcluding(ctx context.Context, collection string, vector []float32, limit int, threshold float64, closedWeight float64, org, repo string, number int) ([]models.SimilarIncident, error) {
	filter := &qdrant.Filter{
		MustNot: []*qdrant.Condition{
			{
				ConditionOneOf: &qdrant.Condition_Filter{
					Filter: &qdrant.Filter{
						Must: []*qdrant.Condition{
							qdrant.NewMatchKeyword("org", org),
							qdrant.NewMatchKeyword("repo", repo),
							qdrant.NewMatchInt("number", int64(number)),
						},
					},
				},
			},
		},
	}
	return c.search(ctx, collection, vector, limit, threshold, closedWeight, filter)
}

func (c *Client) search(ctx context.Context, collection string, vector []float32, limit int, threshold float64, closedWeight float64, filter *qdrant.Filter) ([]models.SimilarIncident, error) {
	scoreThreshold := float32(threshold)

	points, err := c.qdrant.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit * 2)), // Fetch extra for closed weight adjustment
		ScoreThreshold: &scoreThreshold,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         filter,
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]models.SimilarIncident, 0, len(points))
	for _, point := range points {
		inc := payloadToIncident(point.Payload)
		score := float64(point.Score)

		if inc.State == "closed" && closedWeight > 0 {
			score *= closedWeight
		}

		results = append(results, models.SimilarIncident{
			Incident: inc,
			Score:    score,
		})
	}

	// Re-sort after weight adjustment
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// payloadToIncident converts a Qdrant payload to an Incident
func payloadToIncident(payload map[string]*qdrant.Value) models.Incident {
	inc := models.Incident{}

	if v := payload["org"]; v != nil {
		inc.Org = v.GetStringValue()
	}
	if v := payload["repo"]; v != nil {
		inc.Repo = v.GetStringValue()
	}
	if v := payload["number"]; v != nil {
		inc.Number = int(v.GetIntegerValue())
	}
	if v := payload["title"]; v != nil {
		inc.Title = v.GetStringValue()
	}
	if v := payload["state"]; v != nil {
		inc.State = v.GetStringValue()
	}
	if v := payload["root_cause"]; v != nil {
		inc.RootCause = v.GetStringValue()
	}
	if v := payload["url"]; v != nil {
		inc.URL = v.GetStringValue()
	}
	if v := payload["created_at"]; v != nil {
		inc.CreatedAt, _ = time.Parse(time.RFC3339, v.GetStringValue())
	}
	if v := payload["updated_at"]; v != nil {
		inc.UpdatedAt, _ = time.Parse(time.RFC3339, v.GetStringValue())
	}

	return inc
}
