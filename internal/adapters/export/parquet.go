package export

import (
	"fmt"
	"io"
	"time"

	"github.com/comitanigiacomo/activat-sync-engine/internal/core/domain"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

const ParquetContentType = "application/vnd.apache.parquet"

type sessionParquetRow struct {
	ID              string  `parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	CompletedAtISO  string  `parquet:"name=completed_at_iso, type=BYTE_ARRAY, convertedtype=UTF8"`
	CompletedAtUnix int64   `parquet:"name=completed_at_unix, type=INT64"`
	Date            string  `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Steps           int64   `parquet:"name=steps, type=INT64"`
	DurationS       int64   `parquet:"name=duration_s, type=INT64"`
	DistanceKm      float64 `parquet:"name=distance_km, type=DOUBLE"`
}

// MarshalSessionsParquet writes the sessions as one SNAPPY-compressed
// Parquet file, one row per session in the order given.
func MarshalSessionsParquet(sessions []*domain.Session) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(sessionParquetRow), 4)
	if err != nil {
		return nil, fmt.Errorf("parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, s := range sessions {
		row := sessionParquetRow{
			ID:              s.ID,
			CompletedAtISO:  s.Timestamp.Format(time.RFC3339Nano),
			CompletedAtUnix: s.Timestamp.Unix(),
			Date:            domain.DayKey(s.Timestamp),
			Steps:           int64(s.StepCount),
			DurationS:       s.DurationSeconds,
			DistanceKm:      s.DistanceKm,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, fmt.Errorf("parquet write: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("parquet finalize: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

// WriteSessionsParquet streams the Parquet file to w.
func WriteSessionsParquet(w io.Writer, sessions []*domain.Session) (int, error) {
	data, err := MarshalSessionsParquet(sessions)
	if err != nil {
		return 0, err
	}
	return w.Write(data)
}
