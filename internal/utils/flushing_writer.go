package utils

import (
	"io"
	"sync"
)

// FlushingWriter serializes writes to a diagnostic stream and flushes buffered
// writers after every log entry so console output interleaves with git output.
type FlushingWriter struct {
	writer io.Writer
	mutex  sync.Mutex
}

type flusher interface {
	Flush() error
}

type syncer interface {
	Sync() error
}

// NewFlushingWriter wraps writer unless it is already a FlushingWriter.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return nil
	}
	if _, alreadyWrapped := writer.(*FlushingWriter); alreadyWrapped {
		return writer
	}
	return &FlushingWriter{writer: writer}
}

// Write delegates to the underlying writer and flushes it when possible.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}
	if flushableWriter, isFlushable := flushingWriter.writer.(flusher); isFlushable {
		return bytesWritten, flushableWriter.Flush()
	}
	return bytesWritten, nil
}

// Sync forwards to the underlying writer so zap's Logger.Sync reaches files such as os.Stderr.
func (flushingWriter *FlushingWriter) Sync() error {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return nil
	}
	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()
	if syncableWriter, isSyncable := flushingWriter.writer.(syncer); isSyncable {
		return syncableWriter.Sync()
	}
	return nil
}
