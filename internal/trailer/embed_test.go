package trailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEmbedURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "watch url",
			in:   "https://www.youtube.com/watch?v=C0BMx-qxsP4",
			want: "https://www.youtube.com/embed/C0BMx-qxsP4?autoplay=1",
		},
		{
			name: "trailing query parameter",
			in:   "https://www.youtube.com/watch?v=ABC123&t=10s",
			want: "https://www.youtube.com/embed/ABC123?autoplay=1",
		},
		{
			name: "mobile host",
			in:   "https://m.youtube.com/watch?v=ABC123",
			want: "https://www.youtube.com/embed/ABC123?autoplay=1",
		},
		{
			name: "short link",
			in:   "https://youtu.be/qEVUtrk8_B4",
			want: "https://www.youtube.com/embed/qEVUtrk8_B4?autoplay=1",
		},
		{
			name: "short link with query",
			in:   "https://youtu.be/qEVUtrk8_B4?si=share",
			want: "https://www.youtube.com/embed/qEVUtrk8_B4?autoplay=1",
		},
		{
			name: "already embedded",
			in:   "https://www.youtube.com/embed/ABC123",
			want: "https://www.youtube.com/embed/ABC123",
		},
		{
			name: "other host",
			in:   "https://vimeo.com/76979871",
			want: "https://vimeo.com/76979871",
		},
		{
			name: "missing id",
			in:   "https://www.youtube.com/watch?v=",
			want: "https://www.youtube.com/watch?v=",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveEmbedURL(tt.in))
		})
	}
}

func TestVideoID(t *testing.T) {
	id, ok := VideoID("https://www.youtube.com/watch?v=ABC123&t=10s")
	assert.True(t, ok)
	assert.Equal(t, "ABC123", id)

	_, ok = VideoID("https://www.imdb.com/title/tt2911666/")
	assert.False(t, ok)
}

func TestIsEmbeddable(t *testing.T) {
	assert.True(t, IsEmbeddable(ResolveEmbedURL("https://youtu.be/ABC123")))
	assert.False(t, IsEmbeddable("https://www.youtube.com/watch?v=ABC123"))
}
