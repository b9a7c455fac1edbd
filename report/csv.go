package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// MaxCSVRows bounds the rows written by WriteCSV, headers included.
const MaxCSVRows = 200

// WriteCSV writes the topics side by side, three columns each: Word,
// Count and Percentage. The first row names the topics and the second
// the columns. Cells past the end of a shorter topic are empty.
func WriteCSV(w io.Writer, topics []Topic) error {
	longest := 0
	for _, t := range topics {
		if len(t.Words) > longest {
			longest = len(t.Words)
		}
	}
	rows := longest + 2
	if rows > MaxCSVRows {
		rows = MaxCSVRows
	}

	out := csv.NewWriter(w)
	for r := 0; r < rows; r++ {
		rec := make([]string, 3*len(topics))
		for i, t := range topics {
			cell := rec[3*i : 3*i+3]
			switch r {
			case 0:
				cell[1] = "Topic" + strconv.Itoa(t.ID+1)
			case 1:
				cell[0], cell[1], cell[2] = "Word", "Count", "Percentage"
			default:
				if j := r - 2; j < len(t.Words) {
					tw := t.Words[j]
					cell[0] = tw.Word
					cell[1] = strconv.Itoa(tw.Count)
					cell[2] = strconv.FormatFloat(tw.Percent, 'f', -1, 64)
				}
			}
		}
		if err := out.Write(rec); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}
