package leads

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func sampleLead() Lead {
	return Lead{
		ID:        "ld_0192f0a4-7c1e-7000-8000-000000000001",
		Name:      "Grace Hopper",
		Email:     "grace@example.com",
		Phone:     "555-0199",
		Budget:    "$10k+",
		Message:   "Rebrand",
		CreatedAt: time.Date(2026, 5, 9, 14, 30, 0, 250_000_000, time.UTC),
		SourceIP:  "198.51.100.4",
		UserAgent: "Mozilla/5.0",
	}
}

func TestSheetsConfigConfigured(t *testing.T) {
	assert.False(t, SheetsConfig{}.Configured())
	assert.False(t, SheetsConfig{ClientEmail: "svc@x.iam", PrivateKey: "k"}.Configured())
	assert.True(t, SheetsConfig{ClientEmail: "svc@x.iam", PrivateKey: "k", SpreadsheetID: "abc"}.Configured())
}

func TestNewSheetsSinkRequiresCredentials(t *testing.T) {
	_, err := NewSheetsSink(context.Background(), SheetsConfig{SpreadsheetID: "abc"})
	assert.ErrorIs(t, err, ErrSinkNotConfigured)
}

func TestSheetsSinkAppendsRow(t *testing.T) {
	var gotPath, gotQuery string
	var gotBody sheets.ValueRange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-123","updates":{"updatedRows":1}}`)
	}))
	defer srv.Close()

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	sink := NewSheetsSinkWithService(svc, "sheet-123", "")
	ok, err := sink.Deliver(context.Background(), sampleLead())
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "/v4/spreadsheets/sheet-123/values/Leads!A:A:append", gotPath)
	assert.Contains(t, gotQuery, "valueInputOption=USER_ENTERED")
	assert.Contains(t, gotQuery, "insertDataOption=INSERT_ROWS")
	require.Len(t, gotBody.Values, 1)
	assert.Equal(t, []interface{}{
		"ld_0192f0a4-7c1e-7000-8000-000000000001",
		"Grace Hopper",
		"grace@example.com",
		"555-0199",
		"$10k+",
		"Rebrand",
		"2026-05-09T14:30:00.250Z",
		"198.51.100.4",
		"Mozilla/5.0",
	}, gotBody.Values[0])
}

func TestSheetsSinkSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"forbidden"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	ok, err := NewSheetsSinkWithService(svc, "sheet-123", "Leads").Deliver(context.Background(), sampleLead())
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestSheetsSinkWithoutServiceDeclines(t *testing.T) {
	ok, err := NewSheetsSinkWithService(nil, "sheet-123", "").Deliver(context.Background(), sampleLead())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgresSinkInsertsLead(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	lead := sampleLead()
	mock.ExpectExec("INSERT INTO leads").
		WithArgs(lead.ID, lead.Name, lead.Email, lead.Phone, lead.Budget, lead.Message, lead.CreatedAt, lead.SourceIP, lead.UserAgent).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	ok, err := NewPostgresSink(mock).Deliver(context.Background(), lead)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSinkError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO leads").WillReturnError(errors.New("connection refused"))

	ok, err := NewPostgresSink(mock).Deliver(context.Background(), sampleLead())
	assert.False(t, ok)
	assert.ErrorContains(t, err, "connection refused")
}

func TestRedisSinkPushesJSON(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	sink := NewRedisSink(client, "")
	ok, err := sink.Deliver(context.Background(), sampleLead())
	require.NoError(t, err)
	assert.True(t, ok)

	items, err := mr.List(DefaultRedisKey)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var decoded Lead
	require.NoError(t, json.Unmarshal([]byte(items[0]), &decoded))
	assert.Equal(t, sampleLead().ID, decoded.ID)
	assert.Equal(t, "grace@example.com", decoded.Email)
}

func TestRedisSinkUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	ok, err := NewRedisSink(client, "leads:test").Deliver(context.Background(), sampleLead())
	assert.False(t, ok)
	assert.Error(t, err)
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3SinkWritesPartitionedObject(t *testing.T) {
	client := &fakeS3{}
	ok, err := NewS3Sink(client, "blckops-leads").Deliver(context.Background(), sampleLead())
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "blckops-leads", aws.ToString(client.input.Bucket))
	assert.Equal(t, "leads/2026/05/09/ld_0192f0a4-7c1e-7000-8000-000000000001.json", aws.ToString(client.input.Key))
	assert.Equal(t, "application/json", aws.ToString(client.input.ContentType))
	assert.True(t, strings.Contains(string(client.body), `"sourceIP":"198.51.100.4"`))
}

func TestS3SinkWithoutBucketDeclines(t *testing.T) {
	ok, err := NewS3Sink(&fakeS3{}, "").Deliver(context.Background(), sampleLead())
	assert.NoError(t, err)
	assert.False(t, ok)
}

type fakeSQS struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQS) SendMessage(_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestSQSSinkSendsLead(t *testing.T) {
	client := &fakeSQS{}
	queueURL := "https://sqs.us-east-1.amazonaws.com/123456789012/leads"

	ok, err := NewSQSSink(client, queueURL).Deliver(context.Background(), sampleLead())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, queueURL, aws.ToString(client.input.QueueUrl))
	assert.Equal(t, sampleLead().ID, aws.ToString(client.input.MessageAttributes["lead_id"].StringValue))

	var decoded Lead
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(client.input.MessageBody)), &decoded))
	assert.Equal(t, "Grace Hopper", decoded.Name)
}

func TestSQSSinkError(t *testing.T) {
	ok, err := NewSQSSink(&fakeSQS{err: errors.New("throttled")}, "q").Deliver(context.Background(), sampleLead())
	assert.False(t, ok)
	assert.ErrorContains(t, err, "throttled")
}
