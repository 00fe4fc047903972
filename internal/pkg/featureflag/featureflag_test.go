package featureflag

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	svc := NewService("")

	assert.True(t, svc.BulkGenerateEnabled())
	assert.False(t, svc.Config().FeatureFlags.PromoBannerActive)
}

func TestRefresh_EmptyURLIsNoOp(t *testing.T) {
	svc := NewService("")

	require.NoError(t, svc.Refresh(context.Background()))
	assert.True(t, svc.BulkGenerateEnabled())
}

func TestRefresh_AppliesRemoteConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"feature_flags": {
				"promo_banner_active": true,
				"enable_bulk_generate": false
			},
			"tuning_values": {
				"default_rate": 1.25,
				"global_notice_message": "maintenance tonight"
			}
		}`))
	}))
	defer server.Close()

	svc := NewService(server.URL)
	require.NoError(t, svc.Refresh(context.Background()))

	config := svc.Config()
	assert.False(t, svc.BulkGenerateEnabled())
	assert.True(t, config.FeatureFlags.PromoBannerActive)
	assert.Equal(t, "maintenance tonight", config.TuningValues.GlobalNoticeMessage)
}

func TestRefresh_KeepsLastConfigOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService(server.URL)
	require.NoError(t, svc.Refresh(context.Background()))

	// Non-OK responses leave the defaults in place.
	assert.True(t, svc.BulkGenerateEnabled())
}
