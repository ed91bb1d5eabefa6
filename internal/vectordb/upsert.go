package vectordb

import (
	"context"
	"fmt"
	"time"

	"github.com/bugsurgeon/gh-surgeon/pkg/models"
	"github.com/qdrant/go-client/qdrant"
)

// Upsert inserts or updates a single incident vector
func (c *Client) Upsert(ctx context.Context, collection string, inc *models.Incident, vector []float32) error {
	point := incidentToPoint(inc, vector)

	_, err := c.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	return nil
}

// UpsertBatch inserts or updates multiple incident vectors
func (c *Client) UpsertBatch(ctx context.Context, collection string, incidents []*models.Incident, vectors [][]float32) error {
	if len(incidents) != len(vectors) {
		return fmt.Errorf("incidents and vectors length mismatch")
	}

	points := make([]*qdrant.PointStruct, len(incidents))
	for i, inc := range incidents {
		points[i] = incidentToPoint(inc, vectors[i])
	}

	_, err := c.qdrant.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("batch upsert failed: %w", err)
	}
	return nil
}

// Delete removes a point by ID
func (c *Client) Delete(ctx context.Context, collection string, id string) error {
	_, err := c.qdrant.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: []*qdrant.PointId{qdrant.NewIDUUID(id)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

// incidentToPoint converts an Incident to a Qdrant point
func incidentToPoint(inc *models.Incident, vector []float32) *qdrant.PointStruct {
	return &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(inc.UUID()),
		Vectors: qdrant.NewVectors(vector...),
		Payload: map[string]*qdrant.Value{
			"org":        qdrant.NewValueString(inc.Org),
			"repo":       qdrant.NewValueString(inc.Repo),
			"number":     qdrant.NewValueInt(int64(inc.Number)),
			"title":      qdrant.NewValueString(inc.Title),
			"state":      qdrant.NewValueString(inc.State),
			"root_cause": qdrant.NewValueString(inc.RootCause),
			"url":        qdrant.NewValueString(inc.URL),
			"body_hash":  qdrant.NewValueString(inc.BodyHash()),
			"created_at": qdrant.NewValueString(inc.CreatedAt.Format(time.RFC3339)),
			"updated_at": qdrant.NewValueString(inc.UpdatedAt.Format(time.RFC3339)),
		},
	}
}
