package domainAnalysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"Website_Analysis/internal/extractor"
	"Website_Analysis/internal/mocks"
	"Website_Analysis/internal/models"
)

func TestContactPageResolver_DiscoveredLinksFirst(t *testing.T) {
	mockFetcher := &mocks.MockFetcher{}
	resolver := NewContactPageResolver(mockFetcher, extractor.NewEmailExtractor(5))

	discovered := []models.ContactPage{{URL: "https://acme.com/kontakt", LinkText: "Kontakt"}}

	mockFetcher.On("FetchURL", mock.Anything, "https://acme.com/kontakt", mock.Anything).Return(&models.FetchResult{
		Content:    "write to hello@acme-corp.com",
		StatusCode: 200,
	})

	emails := resolver.Resolve(context.Background(), "acme.com", time.Second, discovered, nil)

	assert.Equal(t, []string{"hello@acme-corp.com"}, emails)
	mockFetcher.AssertNumberOfCalls(t, "FetchURL", 1)
}

func TestContactPageResolver_FallsThroughToGuesses(t *testing.T) {
	mockFetcher := &mocks.MockFetcher{}
	resolver := NewContactPageResolver(mockFetcher, extractor.NewEmailExtractor(5))

	// Every candidate fails except one guess further down the list
	mockFetcher.On("FetchURL", mock.Anything, "https://biz.com/contact-us", mock.Anything).Return(&models.FetchResult{
		Content:    "support@biz.com",
		StatusCode: 200,
	})
	mockFetcher.On("FetchURL", mock.Anything, mock.Anything, mock.Anything).Return(&models.FetchResult{
		Error:      "connection refused",
		StatusCode: 500,
	})

	emails := resolver.Resolve(context.Background(), "biz.com", time.Second, nil, nil)

	assert.Equal(t, []string{"support@biz.com"}, emails)
}

func TestContactPageResolver_OKWithoutEmailsKeepsProbing(t *testing.T) {
	mockFetcher := &mocks.MockFetcher{}
	resolver := NewContactPageResolver(mockFetcher, extractor.NewEmailExtractor(5))

	// A 200 page with no addresses does not stop the scan
	mockFetcher.On("FetchURL", mock.Anything, "https://biz.com/contact", mock.Anything).Return(&models.FetchResult{
		Content:    "<html>form only</html>",
		StatusCode: 200,
	})
	mockFetcher.On("FetchURL", mock.Anything, "https://biz.com/contact/", mock.Anything).Return(&models.FetchResult{
		Content:    "reach sales@biz.com",
		StatusCode: 200,
	})

	emails := resolver.Resolve(context.Background(), "biz.com", time.Second, nil, nil)

	assert.Equal(t, []string{"sales@biz.com"}, emails)
}

func TestContactPageResolver_AllCandidatesFail(t *testing.T) {
	mockFetcher := &mocks.MockFetcher{}
	resolver := NewContactPageResolver(mockFetcher, extractor.NewEmailExtractor(5))

	mockFetcher.On("FetchURL", mock.Anything, mock.Anything, mock.Anything).Return(&models.FetchResult{
		Error:      "unreachable",
		StatusCode: 500,
	})

	emails := resolver.Resolve(context.Background(), "dead.com", time.Second, nil, nil)

	assert.Empty(t, emails)
	// Eight guess paths under two schemes
	mockFetcher.AssertNumberOfCalls(t, "FetchURL", 16)
}

func TestContactPageResolver_SkipsGuessesAlreadyDiscovered(t *testing.T) {
	mockFetcher := &mocks.MockFetcher{}
	resolver := NewContactPageResolver(mockFetcher, extractor.NewEmailExtractor(5))

	discovered := []models.ContactPage{{URL: "https://biz.com/contact", LinkText: "Contact"}}

	mockFetcher.On("FetchURL", mock.Anything, mock.Anything, mock.Anything).Return(&models.FetchResult{
		Error:      "unreachable",
		StatusCode: 500,
	})

	resolver.Resolve(context.Background(), "biz.com", time.Second, discovered, nil)

	// The discovered link replaces the matching guess, so the count is unchanged
	mockFetcher.AssertNumberOfCalls(t, "FetchURL", 16)
}

func TestContactPageResolver_CancelledContext(t *testing.T) {
	mockFetcher := &mocks.MockFetcher{}
	resolver := NewContactPageResolver(mockFetcher, extractor.NewEmailExtractor(5))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emails := resolver.Resolve(ctx, "biz.com", time.Second, nil, nil)

	assert.Empty(t, emails)
	mockFetcher.AssertNotCalled(t, "FetchURL")
}

func TestCandidateURLs_Order(t *testing.T) {
	resolver := NewContactPageResolver(&mocks.MockFetcher{}, extractor.NewEmailExtractor(5))

	discovered := []models.ContactPage{{URL: "https://biz.com/reach-us", LinkText: "Reach us"}}
	candidates := resolver.candidateURLs("biz.com", discovered)

	require.NotEmpty(t, candidates)
	assert.Equal(t, "https://biz.com/reach-us", candidates[0])
	assert.Equal(t, "https://biz.com/contact", candidates[1])
}
