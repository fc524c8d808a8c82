package utils_test

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pending/internal/utils"
)

func TestFlushingWriterFlushesBufferedWriters(testInstance *testing.T) {
	destination := &bytes.Buffer{}
	bufferedWriter := bufio.NewWriter(destination)

	writer := utils.NewFlushingWriter(bufferedWriter)
	bytesWritten, writeError := writer.Write([]byte("branch recorded\n"))
	require.NoError(testInstance, writeError)
	require.Equal(testInstance, 16, bytesWritten)
	require.Equal(testInstance, "branch recorded\n", destination.String())
}

func TestFlushingWriterDoesNotDoubleWrap(testInstance *testing.T) {
	writer := utils.NewFlushingWriter(&bytes.Buffer{})
	require.Same(testInstance, writer, utils.NewFlushingWriter(writer))
	require.Nil(testInstance, utils.NewFlushingWriter(nil))
}
