package services

import (
	"context"
	"fmt"
	"testing"

	"hpo-ontology-gateway/errors"
	"hpo-ontology-gateway/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBatchGetTerms_PartitionsPreserveInputOrder(t *testing.T) {
	client := new(MockOntologyClient)
	service := NewBatchService(client, nil)

	client.On("FetchTerm", mock.Anything, "HP:0000001").
		Return(&models.Term{ID: "HP:0000001", Name: "All"}, nil)
	client.On("FetchTerm", mock.Anything, "HP:9999999").
		Return(nil, errors.NewNotFoundError(errors.ErrCodeTermNotFound, "no such term", nil))
	client.On("FetchTerm", mock.Anything, "HP:0001166").
		Return(&models.Term{ID: "HP:0001166", Name: "Arachnodactyly"}, nil)

	result, err := service.GetTerms(context.Background(), []string{"HP:0000001", "HP:9999999", "HP:0001166"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Requested)
	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, "HP:0000001", result.Outcomes[0].ID)
	assert.Equal(t, "HP:9999999", result.Outcomes[1].ID)
	assert.Equal(t, "HP:0001166", result.Outcomes[2].ID)

	require.Len(t, result.Successes, 2)
	assert.Equal(t, "HP:0000001", result.Successes[0].ID)
	assert.Equal(t, "HP:0001166", result.Successes[1].ID)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "HP:9999999", result.Failures[0].ID)
	assert.False(t, result.Failures[0].Success)
	assert.NotEmpty(t, result.Failures[0].Failure)
	assert.Nil(t, result.Failures[0].Term)
}

func TestBatchGetTerms_EmptyInputIsNotAnError(t *testing.T) {
	client := new(MockOntologyClient)
	service := NewBatchService(client, nil)

	result, err := service.GetTerms(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Requested)
	assert.NotNil(t, result.Outcomes)
	assert.Empty(t, result.Outcomes)
	assert.Empty(t, result.Successes)
	assert.Empty(t, result.Failures)

	client.AssertNotCalled(t, "FetchTerm", mock.Anything, mock.Anything)
}

func TestBatchGetTerms_OversizedBatchIsRejectedBeforeFetching(t *testing.T) {
	client := new(MockOntologyClient)
	service := NewBatchService(client, nil)

	ids := make([]string, maxBatchSize+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("HP:%07d", i+1)
	}

	result, err := service.GetTerms(context.Background(), ids)
	assert.Nil(t, result)
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrTypeValidation, appErr.Type)
	assert.Equal(t, errors.ErrCodeBatchTooLarge, appErr.Code)

	client.AssertNotCalled(t, "FetchTerm", mock.Anything, mock.Anything)
}

func TestBatchGetTerms_ExactlyAtCapIsAccepted(t *testing.T) {
	client := new(MockOntologyClient)
	service := NewBatchService(client, nil)

	ids := make([]string, maxBatchSize)
	for i := range ids {
		id := fmt.Sprintf("HP:%07d", i+1)
		ids[i] = id
		client.On("FetchTerm", mock.Anything, id).
			Return(&models.Term{ID: id, Name: "term " + id}, nil)
	}

	result, err := service.GetTerms(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, maxBatchSize, result.Requested)
	assert.Len(t, result.Successes, maxBatchSize)
	assert.Empty(t, result.Failures)
}

func TestBatchGetTerms_NormalizesEachID(t *testing.T) {
	client := new(MockOntologyClient)
	service := NewBatchService(client, nil)

	client.On("FetchTerm", mock.Anything, "HP:0001166").
		Return(&models.Term{ID: "HP:0001166", Name: "Arachnodactyly"}, nil)

	result, err := service.GetTerms(context.Background(), []string{"1166"})
	require.NoError(t, err)
	require.Len(t, result.Successes, 1)
	assert.Equal(t, "HP:0001166", result.Successes[0].ID)
}
