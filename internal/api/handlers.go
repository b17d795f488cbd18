package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"energy-value-lab/internal/aggregate"
	"energy-value-lab/internal/bucket"
	"energy-value-lab/internal/domain"
	"energy-value-lab/internal/join"
	"energy-value-lab/internal/observability"
	"energy-value-lab/internal/value"
)

// parseMerge maps the optional merge query parameter onto a category merge.
// Only the solar-battery merge is defined today.
func parseMerge(c *gin.Context) (*domain.CategoryMerge, bool) {
	switch c.Query("merge") {
	case "":
		return nil, true
	case "solar-battery":
		m := domain.SolarBatteryMerge()
		return &m, true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "UNKNOWN_MERGE",
			"message": "merge must be 'solar-battery' or omitted",
		}})
		return nil, false
	}
}

func aggregationStatus(c *gin.Context, err error) {
	var nonUniform *aggregate.NonUniformError
	if errors.As(err, &nonUniform) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{
			"code":    "NON_UNIFORM_DATA",
			"message": err.Error(),
		}})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
		"code":    "AGGREGATION_FAILED",
		"message": err.Error(),
	}})
}

func bucketLabels() []string {
	labels := make([]string, bucket.Count)
	for i := range labels {
		labels[i] = bucket.Label(i)
	}
	return labels
}

// priceProfile handles GET /api/v1/profile/price.
func (s *Server) priceProfile(c *gin.Context) {
	start := time.Now()
	profile, err := aggregate.PriceProfileOf(s.prices)
	observability.RecordProfile("price", time.Since(start).Seconds(), err)
	if err != nil {
		aggregationStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"times":  bucketLabels(),
		"prices": profile[:],
	})
}

// genProfile handles GET /api/v1/profile/gen.
func (s *Server) genProfile(c *gin.Context) {
	merge, ok := parseMerge(c)
	if !ok {
		return
	}

	start := time.Now()
	profile, err := aggregate.GenProfileOf(s.gen, merge)
	observability.RecordProfile("generation", time.Since(start).Seconds(), err)
	if err != nil {
		aggregationStatus(c, err)
		return
	}

	values := make([][]float64, bucket.Count)
	for i := range profile {
		values[i] = profile[i][:]
	}
	c.JSON(http.StatusOK, gin.H{
		"times":   bucketLabels(),
		"sources": domain.SourceNames[:],
		"values":  values,
	})
}

// valueProfile handles GET /api/v1/value.
func (s *Server) valueProfile(c *gin.Context) {
	merge, ok := parseMerge(c)
	if !ok {
		return
	}

	start := time.Now()
	it := join.New(join.NewSlicePriceCursor(s.prices), join.NewSliceGenCursor(s.gen)).
		WithLogger(s.log)
	agg := value.NewAggregator(merge)
	for {
		pair, ok := it.Next()
		if !ok {
			break
		}
		agg.Add(pair)
	}
	if err := it.Err(); err != nil {
		observability.RecordProfile("value", time.Since(start).Seconds(), err)
		aggregationStatus(c, err)
		return
	}
	profile := agg.Finalize()
	observability.RecordProfile("value", time.Since(start).Seconds(), nil)

	type sourceValue struct {
		Source   string  `json:"source"`
		AvgPrice float64 `json:"avg_price"`
		NetMWh   float64 `json:"net_mwh"`
	}
	rows := make([]sourceValue, 0, domain.NumSources-1)
	for src := 1; src < domain.NumSources; src++ {
		rows = append(rows, sourceValue{
			Source:   domain.SourceNames[src],
			AvgPrice: profile.AvgPrice[src],
			NetMWh:   profile.TotalQty[src],
		})
	}
	c.JSON(http.StatusOK, gin.H{"sources": rows})
}
