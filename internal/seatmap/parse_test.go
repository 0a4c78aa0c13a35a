package seatmap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestParseFileNotFound(t *testing.T) {
	_, _, err := New(zaptest.NewLogger(t)).ParseFile(filepath.Join(t.TempDir(), "missing.xml"))
	require.ErrorIs(t, err, ErrInputNotFound)
	require.Equal(t, KindInputNotFound, KindOf(err))
	require.Contains(t, err.Error(), "file not found")
}

func TestParseFileDirectory(t *testing.T) {
	_, _, err := New(zaptest.NewLogger(t)).ParseFile(t.TempDir())
	require.ErrorIs(t, err, ErrInputNotFound)
}

func TestParseMalformed(t *testing.T) {
	for _, doc := range []string{
		``,
		`just text`,
		`<Envelope><Body></Envelope>`,
		`<a:Envelope xmlns:a="http://schemas.xmlsoap.org/soap/envelope/"><a:Body>`,
	} {
		_, _, err := parseString(t, doc)
		require.ErrorIs(t, err, ErrMalformedDocument, "document %q", doc)
		require.Contains(t, err.Error(), "invalid file format")
	}
}

func TestParseUnsupportedDialect(t *testing.T) {
	flights, dialect, err := parseString(t, `<Envelope xmlns="http://www.w3.org/2003/05/soap-envelope"><Body/></Envelope>`)
	require.Nil(t, flights)
	require.Equal(t, DialectUnknown, dialect)
	require.ErrorIs(t, err, ErrUnsupportedDialect)
	require.Contains(t, err.Error(), "XML format not supported")
}

func TestParseNilDocument(t *testing.T) {
	_, _, err := New(nil).Parse(nil)
	require.ErrorIs(t, err, ErrMalformedDocument)
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("converting: %w", WrapError(KindMalformedDocument, cause, "unable to read XML"))

	require.Equal(t, KindMalformedDocument, KindOf(err))
	require.ErrorIs(t, err, ErrMalformedDocument)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, ErrStructuralViolation)
	require.Equal(t, KindUnknown, KindOf(cause))
	require.Equal(t, "invalid file format: unable to read XML: boom", errors.Unwrap(err).Error())

	e := NewError(KindStructuralViolation, "A/B", "missing attribute %s", "C")
	require.Equal(t, "structural violation: missing attribute C (at A/B)", e.Error())
	require.Equal(t, "Kind(42)", Kind(42).String())
}

// Concurrent parses of documents using different namespaces must not see
// each other's lookup context.
func TestParseConcurrent(t *testing.T) {
	soap, err := os.ReadFile("testdata/soap_seatmap.xml")
	require.NoError(t, err)
	iata, err := os.ReadFile("testdata/iata_seatmap.xml")
	require.NoError(t, err)

	p := New(zaptest.NewLogger(t))
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			flights, _, err := p.ParseReader(strings.NewReader(string(soap)))
			if err == nil && len(flights["AB123"].Rows) != 2 {
				err = fmt.Errorf("soap: unexpected rows %d", len(flights["AB123"].Rows))
			}
			errs <- err
		}()
		go func() {
			defer wg.Done()
			flights, _, err := p.ParseReader(strings.NewReader(string(iata)))
			if err == nil && len(flights["CD456"].Rows) != 2 {
				err = fmt.Errorf("iata: unexpected rows %d", len(flights["CD456"].Rows))
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
