package golden

import (
	"os"
	"path/filepath"
	"testing"

	"gosml/bytesource"
	"gosml/reader"
	"gosml/sml"
)

const manifestPath = "../../testdata/manifest.yaml"

func TestGoldenCorpusDecodesCleanly(t *testing.T) {
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	if len(manifest.Families) == 0 {
		t.Fatalf("manifest has no families")
	}

	for _, family := range manifest.Families {
		family := family

		t.Run(family.Name, func(t *testing.T) {
			policy, err := family.Policy()
			if err != nil {
				t.Fatalf("Policy: %v", err)
			}

			capturePath := filepath.Join(filepath.Dir(manifestPath), family.Capture)
			data, err := os.ReadFile(capturePath)
			if err != nil {
				t.Fatalf("read capture %s: %v", capturePath, err)
			}

			r := reader.New(bytesource.FromSlice(data), reader.Config{
				BufferMode:       reader.OwnedBuffer,
				MaxBytes:         8192,
				ParseMode:        reader.Parse,
				OnInvalidPadding: policy,
			})

			o := r.ReadNext()
			if o.Kind != reader.Message {
				t.Fatalf("expected Message, got %v (err=%v)", o.Kind, o.Err)
			}

			if len(o.File.Messages) != 3 {
				t.Fatalf("expected a 3-message bundle (open/list/close), got %d", len(o.File.Messages))
			}

			body, ok := o.File.Messages[1].MessageBody.(*sml.GetListResponseMessageBody)
			if !ok {
				t.Fatalf("expected *sml.GetListResponseMessageBody, got %T", o.File.Messages[1].MessageBody)
			}

			if len(body.ValList) < family.MinListEntries {
				t.Fatalf("expected >= %d list entries, got %d", family.MinListEntries, len(body.ValList))
			}

			for i, entry := range body.ValList {
				if len(entry.ObjName) == 0 {
					t.Fatalf("entry %d: empty ObjName", i)
				}

				if entry.Value == nil {
					t.Fatalf("entry %d: nil Value", i)
				}
			}

			if next := r.ReadNext(); next.Kind != reader.Eof {
				t.Fatalf("expected Eof after the single frame, got %v", next.Kind)
			}
		})
	}
}
