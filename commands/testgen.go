package commands

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/remit/errors"
	"github.com/iov-one/remit/x/cash"
	"github.com/iov-one/remit/x/remittance"
	"github.com/spf13/cobra"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      proto.Message
}

// Examples returns one instance of every persisted model.
func Examples() []Example {
	remitter := []byte("0123456789abcdefghij")
	return []Example{
		{Filename: "deposit", Obj: &remittance.Deposit{Remitter: remitter, Value: 100}},
		{Filename: "wallet", Obj: &cash.Wallet{Balance: 1000}},
	}
}

// TestGenCmd generates sample protobuf and json encodings
// of the persisted models to test clients against.
func TestGenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "testgen [outdir]",
		Short: "Write json and protobuf encoded model examples",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outdir := "testdata"
			if len(args) > 0 {
				outdir = args[0]
			}
			return writeExamples(Examples(), outdir)
		},
	}
}

func writeExamples(examples []Example, outdir string) error {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create %s: %s", outdir, err)
	}

	for _, ex := range examples {
		// write json data
		js, err := json.Marshal(ex.Obj)
		if err != nil {
			return errors.Wrapf(errors.ErrModel, "json %s: %s", ex.Filename, err)
		}
		jsFile := filepath.Join(outdir, ex.Filename+".json")
		if err := os.WriteFile(jsFile, js, 0644); err != nil {
			return errors.Wrapf(errors.ErrInput, "write %s: %s", jsFile, err)
		}

		// write protbuf data
		pb, err := proto.Marshal(ex.Obj)
		if err != nil {
			return errors.Wrapf(errors.ErrModel, "protobuf %s: %s", ex.Filename, err)
		}
		pbFile := filepath.Join(outdir, ex.Filename+".bin")
		if err := os.WriteFile(pbFile, pb, 0644); err != nil {
			return errors.Wrapf(errors.ErrInput, "write %s: %s", pbFile, err)
		}
	}
	return nil
}
