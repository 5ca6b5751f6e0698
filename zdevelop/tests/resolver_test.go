package tests

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which
// is the preferred method of using multiple asserts in a test.

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/illuscio-dev/resttools-go/mimetype"
	"github.com/illuscio-dev/resttools-go/rest"
)

func resolverConfig() rest.ControllerConfig {
	return rest.ControllerConfig{Default: mimetype.JSON}
}

func candidateRequest(method string, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// An explicit Content-Type header is the sole response candidate, whatever Accept
// says.
func TestResponseCandidatesHeaderWins(test *testing.T) {
	assert := assert.New(test)

	req := candidateRequest(http.MethodPost, "/widgets")
	req.Header.Set("Content-Type", "application/bson")
	req.Header.Set("Accept", "application/json")

	candidates := rest.ResponseCandidates(resolverConfig(), req)

	assert.Len(candidates, 1)
	assert.Equal(mimetype.BSON, candidates[0].Type)
}

// GET requests may pick their response type with a content-type query parameter.
func TestResponseCandidatesQueryParam(test *testing.T) {
	assert := assert.New(test)

	req := candidateRequest(http.MethodGet, "/widgets?content-type=yaml")

	candidates := rest.ResponseCandidates(resolverConfig(), req)

	assert.Len(candidates, 1)
	assert.Equal(mimetype.YAML, candidates[0].Type)
}

// The query parameter is a GET-only convenience.
func TestResponseCandidatesQueryParamIgnoredOnPost(test *testing.T) {
	assert := assert.New(test)

	req := candidateRequest(http.MethodPost, "/widgets?content-type=yaml")

	candidates := rest.ResponseCandidates(resolverConfig(), req)

	// Falls through to the default.
	assert.Len(candidates, 1)
	assert.Equal(mimetype.JSON, candidates[0].Type)
}

func TestResponseCandidatesAcceptRanking(test *testing.T) {
	assert := assert.New(test)

	req := candidateRequest(http.MethodGet, "/widgets")
	req.Header.Set(
		"Accept", "application/json;q=0.5, application/yaml;q=0.9",
	)

	candidates := rest.ResponseCandidates(resolverConfig(), req)

	assert.Len(candidates, 2)
	assert.Equal(mimetype.YAML, candidates[0].Type)
	assert.Equal(mimetype.JSON, candidates[1].Type)
}

func TestResponseCandidatesWildcardMapsToDefault(test *testing.T) {
	assert := assert.New(test)

	req := candidateRequest(http.MethodGet, "/widgets")
	req.Header.Set("Accept", "*/*")

	candidates := rest.ResponseCandidates(resolverConfig(), req)

	assert.Len(candidates, 1)
	assert.Equal(mimetype.JSON, candidates[0].Type)
}

// A wildcard that duplicates an explicit entry collapses into it.
func TestResponseCandidatesWildcardDeduplicated(test *testing.T) {
	assert := assert.New(test)

	req := candidateRequest(http.MethodGet, "/widgets")
	req.Header.Set("Accept", "application/json, */*;q=0.1")

	candidates := rest.ResponseCandidates(resolverConfig(), req)

	assert.Len(candidates, 1)
	assert.Equal(mimetype.JSON, candidates[0].Type)
}

func TestResponseCandidatesAbsentAcceptFallsBack(test *testing.T) {
	assert := assert.New(test)

	req := candidateRequest(http.MethodGet, "/widgets")

	candidates := rest.ResponseCandidates(resolverConfig(), req)

	assert.Len(candidates, 1)
	assert.Equal(mimetype.JSON, candidates[0].Type)
	assert.Equal(0.0, candidates[0].Quality)
}

// With no default configured, nothing usable means no candidates at all.
func TestResponseCandidatesNoDefault(test *testing.T) {
	assert := assert.New(test)

	req := candidateRequest(http.MethodGet, "/widgets")
	req.Header.Set("Accept", "*/*")

	candidates := rest.ResponseCandidates(rest.ControllerConfig{}, req)

	assert.Empty(candidates)
}

func TestRequestCandidatesHeader(test *testing.T) {
	assert := assert.New(test)

	req := candidateRequest(http.MethodPost, "/widgets")
	req.Header.Set("Content-Type", "application/yaml")
	// Accept never applies to request bodies.
	req.Header.Set("Accept", "application/bson")

	candidates := rest.RequestCandidates(resolverConfig(), req)

	assert.Len(candidates, 1)
	assert.Equal(mimetype.YAML, candidates[0].Type)
}

func TestRequestCandidatesDefaultFallback(test *testing.T) {
	assert := assert.New(test)

	req := candidateRequest(http.MethodPost, "/widgets")

	candidates := rest.RequestCandidates(resolverConfig(), req)

	assert.Len(candidates, 1)
	assert.Equal(mimetype.JSON, candidates[0].Type)
}

func TestRequestCandidatesNoDefault(test *testing.T) {
	req := candidateRequest(http.MethodPost, "/widgets")

	candidates := rest.RequestCandidates(rest.ControllerConfig{}, req)

	assert.Empty(test, candidates)
}
