package giantbomb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamevault/internal/errors"
)

const testBaseURL = "https://giantbomb.test/api"

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(Config{
		BaseURL:      testBaseURL,
		APIKey:       "test-key",
		Timeout:      5 * time.Second,
		RequestDelay: 0, // no rate limiting in tests
		MaxRetries:   3,
	}, false)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	httpmock.ActivateNonDefault(client.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	return client
}

func pageBody(pageResults, totalResults int, results string) string {
	return fmt.Sprintf(`{
		"error": "OK",
		"status_code": 1,
		"number_of_page_results": %d,
		"number_of_total_results": %d,
		"results": %s
	}`, pageResults, totalResults, results)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	client, err := NewClient(Config{BaseURL: testBaseURL}, false)

	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
}

func TestFetchPage_Success(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/rating_boards/",
		httpmock.NewStringResponder(http.StatusOK, pageBody(2, 2,
			`[{"id": 10, "name": "ESRB"}, {"id": 11, "name": "PEGI"}]`)))

	page, err := client.FetchPage(context.Background(), ResourceRatingBoards, 0, 100)

	require.NoError(t, err)
	assert.Equal(t, 2, page.NumberOfPageResults)
	assert.Equal(t, 2, page.NumberOfTotalResults)

	var boards []RatingBoardResult
	require.NoError(t, json.Unmarshal(page.Results, &boards))
	require.Len(t, boards, 2)
	assert.Equal(t, 10, boards[0].ID)
	assert.Equal(t, "ESRB", boards[0].Name)
}

func TestFetchPage_SendsPaginationParams(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/companies/",
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "test-key", q.Get("api_key"))
			assert.Equal(t, "json", q.Get("format"))
			assert.Equal(t, "40", q.Get("offset"))
			assert.Equal(t, "20", q.Get("limit"))
			return httpmock.NewStringResponse(http.StatusOK, pageBody(0, 0, "[]")), nil
		})

	_, err := client.FetchPage(context.Background(), ResourceCompanies, 40, 20)
	require.NoError(t, err)
}

func TestFetchPage_RetriesTransientFailures(t *testing.T) {
	client := newTestClient(t)

	calls := 0
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/genres/",
		func(req *http.Request) (*http.Response, error) {
			calls++
			if calls < 3 {
				return httpmock.NewStringResponse(http.StatusServiceUnavailable, "unavailable"), nil
			}
			return httpmock.NewStringResponse(http.StatusOK, pageBody(1, 1, `[{"id": 1, "name": "Platformer"}]`)), nil
		})

	page, err := client.FetchPage(context.Background(), ResourceGenres, 0, 100)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, page.NumberOfPageResults)
}

func TestFetchPage_ExhaustedRetries(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/genres/",
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"))

	page, err := client.FetchPage(context.Background(), ResourceGenres, 0, 100)

	require.Error(t, err)
	assert.Nil(t, page)
	assert.True(t, errors.IsCategory(err, errors.CategoryNetwork))

	var ee *errors.EnhancedError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, ResourceGenres, ee.GetContext()["resource"])
	assert.Equal(t, 3, ee.GetContext()["attempts"])
	assert.Equal(t, 3, httpmock.GetTotalCallCount())
}

func TestFetchPage_AuthFailureNotRetried(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/games/",
		httpmock.NewStringResponder(http.StatusUnauthorized, "invalid key"))

	_, err := client.FetchPage(context.Background(), ResourceGames, 0, 100)

	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestFetchPage_EnvelopeError(t *testing.T) {
	client := newTestClient(t)

	// The provider reports application errors inside a 200 response
	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/games/",
		httpmock.NewStringResponder(http.StatusOK,
			`{"error": "Invalid API Key", "status_code": 100, "results": []}`))

	_, err := client.FetchPage(context.Background(), ResourceGames, 0, 100)

	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryHTTP))
	assert.Contains(t, err.Error(), "Invalid API Key")
}

func TestFetchPage_InvalidJSON(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/games/",
		httpmock.NewStringResponder(http.StatusOK, "{not json"))

	_, err := client.FetchPage(context.Background(), ResourceGames, 0, 100)

	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryFileParsing))
}

func TestFetchDetail_SuccessAndCache(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, testBaseURL+"/game/3030-4725/",
		httpmock.NewStringResponder(http.StatusOK, `{
			"error": "OK",
			"status_code": 1,
			"results": {"id": 4725, "guid": "3030-4725", "name": "Doom", "genres": [{"id": 5, "name": "Shooter"}]}
		}`))

	var detail GameDetailResult
	require.NoError(t, client.FetchDetail(context.Background(), ResourceGame, "3030-4725", &detail))
	assert.Equal(t, "Doom", detail.Name)
	require.Len(t, detail.Genres, 1)
	assert.Equal(t, 5, detail.Genres[0].ID)

	// Second fetch is served from the cache
	var again GameDetailResult
	require.NoError(t, client.FetchDetail(context.Background(), ResourceGame, "3030-4725", &again))
	assert.Equal(t, "Doom", again.Name)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestWaitForRateLimit_EnforcesDelay(t *testing.T) {
	client, err := NewClient(Config{
		BaseURL:      testBaseURL,
		APIKey:       "test-key",
		RequestDelay: 50 * time.Millisecond,
	}, false)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	ctx := context.Background()
	require.NoError(t, client.waitForRateLimit(ctx))

	start := time.Now()
	require.NoError(t, client.waitForRateLimit(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestWaitForRateLimit_CancelledContext(t *testing.T) {
	client, err := NewClient(Config{
		BaseURL:      testBaseURL,
		APIKey:       "test-key",
		RequestDelay: time.Minute,
	}, false)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	require.NoError(t, client.waitForRateLimit(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, client.waitForRateLimit(ctx), context.Canceled)
}

func TestSplitAliases(t *testing.T) {
	strp := func(s string) *string { return &s }

	tests := []struct {
		name  string
		input *string
		want  []string
	}{
		{"nil input", nil, nil},
		{"empty string", strp(""), nil},
		{"whitespace only", strp("  \n "), nil},
		{"single alias", strp("GTA"), []string{"GTA"}},
		{"multiple aliases", strp("GTA\nGrand Theft Auto\nGTA V"), []string{"GTA", "Grand Theft Auto", "GTA V"}},
		{"windows line endings", strp("DMC\r\nDevil May Cry"), []string{"DMC", "Devil May Cry"}},
		{"blank lines dropped", strp("Halo\n\n  \nHalo: CE"), []string{"Halo", "Halo: CE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitAliases(tt.input))
		})
	}
}
