package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"

	"github.com/tile-structures/corona.SDK/gocorona"
	"github.com/tile-structures/corona.SDK/libcorona"
	"github.com/tile-structures/corona.SDK/libcorona/catalog"
)

// runRecord is the persisted form of one enumeration run. The core supplies
// the count and the compact encodings; identity and timestamping live here.
type runRecord struct {
	RunID       string   `json:"run_id"`
	Center      int      `json:"center"`
	Count       int      `json:"count"`
	GeneratedAt string   `json:"generated_at"`
	Coronas     []string `json:"coronas"`
}

func newEnumerateCmd() *cobra.Command {
	var (
		center  int
		outPath string
		dbPath  string
		useDb   bool
	)

	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "enumerate the unique coronas for a center value",
		RunE: func(_ *cobra.Command, _ []string) error {
			unique, err := libcorona.Enumerate(center)
			if err != nil {
				return err
			}
			klog.Infof("center %d: %d unique coronas", center, len(unique))

			rec := runRecord{
				RunID:       uuid.NewString(),
				Center:      center,
				Count:       len(unique),
				GeneratedAt: time.Now().UTC().Format(time.RFC3339),
				Coronas:     make([]string, 0, len(unique)),
			}
			for _, c := range unique {
				rec.Coronas = append(rec.Coronas, c.CompactString())
			}

			recBuf, err := json.MarshalIndent(&rec, "", "  ")
			if err != nil {
				return err
			}
			recBuf = append(recBuf, '\n')

			if outPath == "" || outPath == "-" {
				os.Stdout.Write(recBuf)
			} else {
				if err = os.WriteFile(outPath, recBuf, 0o644); err != nil {
					return err
				}
				klog.Infof("wrote run %s to %s", rec.RunID, outPath)
			}

			if useDb || dbPath != "" {
				if err = addToCatalog(dbPath, center, unique); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&center, "center", 1, "center value to enumerate")
	cmd.Flags().StringVar(&outPath, "out", "-", "run record destination file (\"-\" for stdout)")
	cmd.Flags().StringVar(&dbPath, "db", "", "also add results to the catalog db at this path")
	cmd.Flags().BoolVar(&useDb, "mem-db", false, "also add results to an in-memory catalog (exercise only)")
	return cmd
}

func addToCatalog(dbPath string, center int, unique []gocorona.Corona) error {
	ctx := gocorona.NewCatalogContext()

	cat, err := catalog.OpenCatalog(ctx, gocorona.CatalogOpts{
		DbPathName: dbPath,
		MaxCenter:  int32(center),
	})
	if err != nil {
		return err
	}

	src := gocorona.NewCoronaStream()
	go func() {
		for _, c := range unique {
			src.PushCorona(c)
		}
		src.Close()
	}()
	added := src.AddTo(cat).PullAll()
	klog.Infof("catalog: %d of %d were new (total for center %d: %d)",
		added, len(unique), center, cat.NumCoronas(center))

	ctx.Close()
	<-ctx.Done()
	return nil
}
