package datauri

import (
	"RGFlow/internal/model"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// минимальный PNG 1x1
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		mime string
		data []byte
	}{
		{"empty", "text/plain", []byte{}},
		{"text", "text/plain", []byte("olá, mundo\n")},
		{"binary png", "image/png", pngBytes},
		{"all bytes", "application/octet-stream", func() []byte {
			b := make([]byte, 256)
			for i := range b {
				b[i] = byte(i)
			}
			return b
		}()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			att, err := ReadFile(context.Background(), tc.name, tc.mime, bytes.NewReader(tc.data), 0)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tc.data)), att.SizeBytes)
			assert.True(t, strings.HasPrefix(att.Payload, "data:"+tc.mime+";base64,"))

			mime, got, err := Decode(att.Payload)
			require.NoError(t, err)
			assert.Equal(t, tc.mime, mime)
			assert.Equal(t, len(tc.data), len(got))
			assert.True(t, bytes.Equal(tc.data, got))
			assert.NoError(t, Verify(att))
		})
	}
}

func TestEncode_StandardForm(t *testing.T) {
	assert.Equal(t, "data:text/plain;base64,aGk=", Encode("text/plain", []byte("hi")))
	assert.Equal(t, "data:application/octet-stream;base64,", Encode("", nil))
}

func TestDecode_Forms(t *testing.T) {
	mime, data, err := Decode("data:,Hello%2C%20World")
	require.NoError(t, err)
	assert.Equal(t, "text/plain;charset=US-ASCII", mime)
	assert.Equal(t, "Hello, World", string(data))

	_, data, err = Decode("data:text/plain;base64,aGk")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	for _, bad := range []string{"", "hello", "data:text/plain;base64", "data:text/plain;base64,***"} {
		_, _, err := Decode(bad)
		assert.ErrorIs(t, err, ErrMalformed, bad)
	}
}

func TestReadFile_TooLarge(t *testing.T) {
	_, err := ReadFile(context.Background(), "big.bin", "", bytes.NewReader(make([]byte, 11)), 10)
	var fre *FileReadError
	require.ErrorAs(t, err, &fre)
	assert.Equal(t, "big.bin", fre.Name)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Contains(t, err.Error(), "big.bin")
}

func TestReadFile_ExactLimitOK(t *testing.T) {
	att, err := ReadFile(context.Background(), "ok.bin", "application/octet-stream", bytes.NewReader(make([]byte, 10)), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), att.SizeBytes)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk error") }

func TestReadFile_ReadError(t *testing.T) {
	_, err := ReadFile(context.Background(), "x.pdf", "application/pdf", failingReader{}, 0)
	var fre *FileReadError
	require.ErrorAs(t, err, &fre)
	assert.Equal(t, "x.pdf", fre.Name)
}

func TestReadFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadFile(ctx, "x", "", strings.NewReader("abc"), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadFile_DetectsMime(t *testing.T) {
	att, err := ReadFile(context.Background(), "pixel", "", bytes.NewReader(pngBytes), 0)
	require.NoError(t, err)
	assert.Equal(t, "image/png", att.MimeType)
}

func TestVerify_SizeMismatch(t *testing.T) {
	err := Verify(model.Attachment{Name: "a", SizeBytes: 5, Payload: Encode("text/plain", []byte("hi"))})
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestDownloadAll_FailureDoesNotBlockOthers(t *testing.T) {
	atts := []model.Attachment{
		{Name: "a.txt", MimeType: "text/plain", SizeBytes: 1, Payload: Encode("text/plain", []byte("a"))},
		{Name: "broken", MimeType: "text/plain", Payload: "not-a-data-url"},
		{Name: "c.png", MimeType: "image/png", SizeBytes: int64(len(pngBytes)), Payload: Encode("image/png", pngBytes)},
	}
	got := map[string][]byte{}
	err := DownloadAll(context.Background(), atts, func(name, mime string, data []byte) error {
		got[name] = data
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, []byte("a"), got["a.txt"])
	assert.Equal(t, pngBytes, got["c.png"])
	assert.NotContains(t, got, "broken")
}

func TestDownloadAll_SinkError(t *testing.T) {
	atts := []model.Attachment{
		{Name: "a", Payload: Encode("text/plain", []byte("a"))},
		{Name: "b", Payload: Encode("text/plain", []byte("b"))},
	}
	var calls int
	err := DownloadAll(context.Background(), atts, func(name, _ string, _ []byte) error {
		calls++
		if name == "a" {
			return errors.New("write failed")
		}
		return nil
	})
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
}
