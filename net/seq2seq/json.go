package seq2seq

import "compress/lzw"
import "encoding/json"
import "io"
import "os"

import "github.com/pkg/errors"

// WriteCompressedWeightsToFile writes the network to a lzw file
func (n *Network) WriteCompressedWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "can't create %s", name)
	}
	err = n.WriteCompressedWeights(file)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = errors.Wrapf(cerr, "can't close %s", name)
	}
	return err
}

// WriteCompressedWeights writes the network as lzw compressed json to a writer
func (n *Network) WriteCompressedWeights(w io.Writer) error {
	lw := lzw.NewWriter(w, lzw.LSB, 8)
	if err := json.NewEncoder(lw).Encode(n); err != nil {
		lw.Close()
		return errors.Wrap(err, "can't encode weights")
	}
	return errors.Wrap(lw.Close(), "can't compress weights")
}

// ReadCompressedWeightsFromFile reads and validates a network from a lzw file
func ReadCompressedWeightsFromFile(name string) (*Network, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open %s", name)
	}
	defer file.Close()
	n, err := ReadCompressedWeights(file)
	if err != nil {
		return nil, errors.Wrapf(err, "can't load %s", name)
	}
	return n, nil
}

// ReadCompressedWeights reads and validates a network from a reader
func ReadCompressedWeights(r io.Reader) (*Network, error) {
	lr := lzw.NewReader(r, lzw.LSB, 8)
	defer lr.Close()

	n := new(Network)
	if err := json.NewDecoder(lr).Decode(n); err != nil {
		return nil, errors.Wrap(err, "can't decode weights")
	}
	if err := n.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid weights")
	}
	return n, nil
}
