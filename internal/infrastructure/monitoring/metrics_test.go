package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCalculation(t *testing.T) {
	Business.CalculationsTotal.Reset()

	RecordCalculation(OutcomeSuccess, time.Millisecond)
	RecordCalculation(OutcomeSuccess, time.Millisecond)
	RecordCalculation(OutcomeInvalid, time.Microsecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(Business.CalculationsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(Business.CalculationsTotal.WithLabelValues(OutcomeInvalid)))
}

func TestSetCatalogSize(t *testing.T) {
	SetCatalogSize(4)
	assert.Equal(t, 4.0, testutil.ToFloat64(Business.CatalogProducts))
}

func TestRecordDBQuery(t *testing.T) {
	DB.QueryDuration.Reset()

	RecordDBQuery("ListProducts", "success", 3*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(DB.QueryDuration))
}
