package bdpm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultPage = `<html><body>
<a href="/affichageDoc.php?specid=123">Fiche info</a>
<a href="/docs/R0123456.pdf">RCP</a>
<a href="/docs/notice.pdf">Notice</a>
</body></html>`

func TestLocateFirstMatchingLinkWins(t *testing.T) {
	var searchQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/index.php":
			searchQuery = r.URL.Query().Get("txtCaracteres")
			fmt.Fprint(w, resultPage)
		case r.URL.Path == "/docs/R0123456.pdf":
			w.Write([]byte("%PDF-1.4 fake rcp"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	svc := NewServiceWithClient(server.URL, server.Client())
	ref, err := svc.Locate(context.Background(), "AMOXIL")
	require.NoError(t, err)
	require.NotNil(t, ref)

	assert.Equal(t, "AMOXIL", searchQuery)
	assert.Contains(t, ref.SourceURL, "/docs/R0123456.pdf")
	assert.Equal(t, []byte("%PDF-1.4 fake rcp"), ref.Bytes)
	assert.Empty(t, ref.Text, "text is filled by a later stage")
	assert.Empty(t, ref.Digest)
}

func TestLocateNoMatchingLinkIsAbsentNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/affichageDoc.php?specid=1">Fiche</a></body></html>`)
	}))
	defer server.Close()

	svc := NewServiceWithClient(server.URL, server.Client())
	ref, err := svc.Locate(context.Background(), "INCONNU")
	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestLocateEmptyNameIsAbsent(t *testing.T) {
	svc := NewServiceWithClient("http://unused.invalid", http.DefaultClient)
	ref, err := svc.Locate(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestLocateNetworkFailureIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := server.Client()
	server.Close()

	svc := NewServiceWithClient(server.URL, client)
	ref, err := svc.Locate(context.Background(), "AMOXIL")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.Nil(t, ref)
}

func TestLocateSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewServiceWithClient(server.URL, server.Client())
	_, err := svc.Locate(context.Background(), "AMOXIL")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestLocateDownloadFailureIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/index.php" {
			fmt.Fprint(w, resultPage)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	svc := NewServiceWithClient(server.URL, server.Client())
	_, err := svc.Locate(context.Background(), "AMOXIL")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDownloadFailed)
}

func TestFirstDocumentLinkCaseInsensitiveSuffix(t *testing.T) {
	page := []byte(`<a href="/docs/RCP.PDF">rcp</a>`)
	link, err := firstDocumentLink(page, nil)
	require.NoError(t, err)
	assert.Equal(t, "/docs/RCP.PDF", link)
}
