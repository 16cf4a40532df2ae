package tapatalk

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func TestApplyOpts(t *testing.T) {
	// the With* options are covered by the tests of the functions that accept
	// them; just make sure we don't panic on nil options
	assert := assert.New(t)
	anonymousOpts := struct {
		Names []string
	}{
		nil,
	}
	ApplyOpts(anonymousOpts, nil)

	// nil Options are ignored, and the ones around them still apply
	opts := authURLDefaults()
	ApplyOpts(&opts, nil, WithSeparator("&amp;"), nil)
	assert.Equal("&amp;", opts.withSeparator)
}

func Test_WithRandomReader(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	r := bytes.NewReader([]byte{0x01})

	fOpts := getFlowOpts(WithRandomReader(r))
	testFOpts := flowDefaults()
	testFOpts.withRandomReader = r
	assert.Equal(fOpts, testFOpts)

	sOpts := getStateOpts(WithRandomReader(r))
	testSOpts := stateDefaults()
	testSOpts.withRandomReader = r
	assert.Equal(sOpts, testSOpts)
}

func Test_WithFlowOptions(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	client := &http.Client{}
	logger := hclog.NewNullLogger()

	opts := getFlowOpts(
		WithAuthBaseURL("https://tapatalk.example.com"),
		WithTokenURL("https://tapatalk.example.com/token"),
		WithCSRFLength(16),
		WithProviderCA("PEM"),
		WithHTTPClient(client),
		WithLogger(logger),
	)
	testOpts := flowDefaults()
	testOpts.withAuthBaseURL = "https://tapatalk.example.com"
	testOpts.withTokenURL = "https://tapatalk.example.com/token"
	testOpts.withCSRFLength = 16
	testOpts.withProviderCA = "PEM"
	testOpts.withHTTPClient = client
	testOpts.withLogger = logger
	assert.Equal(opts, testOpts)
}

func Test_WithSeparator(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	opts := getAuthURLOpts(WithSeparator("&amp;"))
	testOpts := authURLDefaults()
	testOpts.withSeparator = "&amp;"
	assert.Equal(opts, testOpts)

	assert.Equal(DefaultSeparator, getAuthURLOpts().withSeparator)
}

func Test_WithRedirectURL(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	opts := getExchangeOpts(WithRedirectURL("https://app.example.com/cb"))
	testOpts := exchangeDefaults()
	testOpts.withRedirectURL = "https://app.example.com/cb"
	assert.Equal(opts, testOpts)
}
