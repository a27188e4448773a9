package engine

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	pb "github.com/cheggaaa/pb/v3"

	"github.com/Vallyiast/Projet-PNG-GIF-ITI4-INSA/compressor/container"
	"github.com/Vallyiast/Projet-PNG-GIF-ITI4-INSA/compressor/deflate"
	"github.com/Vallyiast/Projet-PNG-GIF-ITI4-INSA/compressor/lzw"
)

var Engines = [...]string{
	"deflate",
	"lzw",
}

type compressor struct {
	compressionEngine string
	compressedContent []byte
}

var writers = map[string]func(io.Writer) io.WriteCloser{
	"deflate": deflate.NewWriter,
	"lzw":     lzw.NewWriter,
}

var readers = map[string]func(io.Reader) io.ReadCloser{
	"deflate": deflate.NewReader,
	"lzw":     lzw.NewReader,
}

func (c *compressor) write(content []byte) (int, error) {
	newWriter, ok := writers[c.compressionEngine]
	if !ok {
		return 0, fmt.Errorf("engine: unknown algorithm %q", c.compressionEngine)
	}
	var b bytes.Buffer
	w := newWriter(&b)
	if _, err := w.Write(content); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	c.compressedContent = b.Bytes()
	return len(c.compressedContent), nil
}

func (c *compressor) read(content []byte) (int, error) {
	newReader, ok := readers[c.compressionEngine]
	if !ok {
		return 0, fmt.Errorf("engine: unknown algorithm %q", c.compressionEngine)
	}
	r := newReader(bytes.NewReader(content))
	defer r.Close()
	decompressed, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	c.compressedContent = decompressed
	return len(c.compressedContent), nil
}

func CompressFiles(algorithms []string, files []string, fileExtension string) {
	bar := pb.New(len(files))
	bar.Start()
	for _, file := range files {
		if err := CompressFile(algorithms, file, file+"."+fileExtension); err != nil {
			panic(err)
		}
		bar.Increment()
	}
	bar.Finish()
}

func DecompressFiles(files []string, fileExtension string) {
	bar := pb.New(len(files))
	bar.Start()
	for _, file := range files {
		outputFileName := strings.TrimSuffix(file, "."+fileExtension)
		if outputFileName == file {
			outputFileName = file + ".out"
		}
		if err := DecompressFile(file, outputFileName); err != nil {
			panic(err)
		}
		bar.Increment()
	}
	bar.Finish()
}

// CompressFile runs the algorithm chain over the file content and frames
// the result so that decompression can recover the chain from the file
// itself.
func CompressFile(algorithms []string, filePath string, outputFileName string) error {
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	compressed, err := compress(fileContent, algorithms)
	if err != nil {
		return err
	}
	framed, err := container.Wrap(strings.Join(algorithms, ","), compressed)
	if err != nil {
		return err
	}
	if err = os.WriteFile(outputFileName, framed, 0644); err != nil {
		return err
	}
	fmt.Printf("Original size (in bytes): %v\n", len(fileContent))
	fmt.Printf("Compressed size (in bytes): %v\n", len(framed))
	fmt.Printf("Compression ratio: %.2f%%\n", float32(len(framed))/float32(len(fileContent))*100)
	return nil
}

// DecompressFile reads the framing, then applies the recorded algorithm
// chain in reverse.
func DecompressFile(filePath string, outputFileName string) error {
	framed, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	algorithmChain, compressed, err := container.Unwrap(framed)
	if err != nil {
		return err
	}
	algorithms := strings.Split(algorithmChain, ",")
	content, err := decompress(compressed, algorithms)
	if err != nil {
		return err
	}
	return os.WriteFile(outputFileName, content, 0644)
}

func compress(content []byte, algorithms []string) ([]byte, error) {
	for _, algorithm := range algorithms {
		file := compressor{
			compressionEngine: algorithm,
		}
		if _, err := file.write(content); err != nil {
			return nil, err
		}
		content = file.compressedContent
	}
	return content, nil
}

func decompress(content []byte, algorithms []string) ([]byte, error) {
	for i := len(algorithms) - 1; i >= 0; i-- {
		file := compressor{
			compressionEngine: algorithms[i],
		}
		if _, err := file.read(content); err != nil {
			return nil, err
		}
		content = file.compressedContent
	}
	return content, nil
}
