package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
	deleted []string
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_WritePutsObjectUnderPrefix(t *testing.T) {
	api := newFakeObjectAPI()
	store := newS3Store(api, "media", "uploads")

	n, err := store.Write(context.Background(), "venues/abc.png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	assert.Equal(t, []byte("png"), api.objects["media/uploads/venues/abc.png"])
	assert.Equal(t, "image/png", api.types["media/uploads/venues/abc.png"])
}

func TestS3Store_PutErrorIsWrapped(t *testing.T) {
	api := newFakeObjectAPI()
	api.putErr = errors.New("access denied")
	store := newS3Store(api, "media", "uploads")

	_, err := store.Write(context.Background(), "venues/abc.png", bytes.NewReader([]byte("png")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "media/uploads/venues/abc.png")
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3Store_Remove(t *testing.T) {
	api := newFakeObjectAPI()
	store := newS3Store(api, "media", "uploads")

	require.NoError(t, store.Remove(context.Background(), "venues/abc.png"))
	assert.Equal(t, []string{"media/uploads/venues/abc.png"}, api.deleted)
}

func TestService_WithS3Store(t *testing.T) {
	api := newFakeObjectAPI()
	svc := NewService(Config{UploadRoot: "uploads", PublicBaseURL: testBaseURL}, newS3Store(api, "media", "uploads"))

	url, err := svc.UploadOne(context.Background(), newFakeFile("hall.jpg", []byte("jpeg")), "venues")
	require.NoError(t, err)
	assert.Regexp(t, `^http://localhost:8080/uploads/venues/`+uuidName+`\.jpg$`, url)
	require.Len(t, api.objects, 1)

	// a payload over the cap never reaches the bucket
	liar := &fakeFile{name: "liar.png", size: 1, data: bytes.Repeat([]byte{1}, MaxFileSize+1)}
	_, err = svc.UploadOne(context.Background(), liar, "venues")
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Len(t, api.objects, 1)
}
