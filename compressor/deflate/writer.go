package deflate

import (
	"bytes"
	"io"
	"sync"
)

type compressionCore struct {
	lock        sync.Mutex
	inputBuffer bytes.Buffer
	output      io.Writer
}

type CompressionWriter struct {
	core *compressionCore
}

type decompressionCore struct {
	lock   sync.Mutex
	input  io.Reader
	output *bytes.Reader
}

type DecompressionReader struct {
	core *decompressionCore
}

// NewWriter buffers everything written to it and, on Close, compresses the
// whole buffer into writer. Both pipeline stages need the full input, so
// nothing reaches writer until Close.
func NewWriter(writer io.Writer) io.WriteCloser {
	newCompressionWriter := new(CompressionWriter)
	newCompressionWriter.core = &compressionCore{output: writer}
	return newCompressionWriter
}

func (cw *CompressionWriter) Write(data []byte) (int, error) {
	cw.core.lock.Lock()
	defer cw.core.lock.Unlock()
	return cw.core.inputBuffer.Write(data)
}

func (cw *CompressionWriter) Close() error {
	cw.core.lock.Lock()
	defer cw.core.lock.Unlock()
	compressed, err := Compress(cw.core.inputBuffer.Bytes())
	if err != nil {
		return err
	}
	if _, err = cw.core.output.Write(compressed); err != nil {
		return err
	}
	return nil
}

// NewReader decompresses a stream produced by NewWriter. The whole input is
// consumed and decompressed on the first Read.
func NewReader(reader io.Reader) io.ReadCloser {
	newDecompressionReader := new(DecompressionReader)
	newDecompressionReader.core = &decompressionCore{input: reader}
	return newDecompressionReader
}

func (dr *DecompressionReader) Read(data []byte) (int, error) {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	if dr.core.output == nil {
		compressed, err := io.ReadAll(dr.core.input)
		if err != nil {
			return 0, err
		}
		content, err := Decompress(compressed)
		if err != nil {
			return 0, err
		}
		dr.core.output = bytes.NewReader(content)
	}
	return dr.core.output.Read(data)
}

func (dr *DecompressionReader) Close() error {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	dr.core.output = nil
	return nil
}
