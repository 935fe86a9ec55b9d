// FILE: lixenwraith/typeconv/example/main.go
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lixenwraith/typeconv"
)

// Status is an order state parsed by name.
type Status int

const (
	StatusOpen Status = iota
	StatusShipped
	StatusCancelled
)

var statusNames = []string{"Open", "Shipped", "Cancelled"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(text))
}

// Order is the model every part of the demo converts into or out of.
type Order struct {
	ID       int64     `col:"order_id"`
	Customer string    `col:"customer"`
	Total    float64   `col:"total"`
	Status   Status    `col:"status"`
	Placed   time.Time `col:"placed"`
	Shipped  *time.Time
	Note     *string
	Internal string
}

const ordersCSV = `order_id,customer,total,status,placed,Shipped,Note,internal
1001,ann,19.90,Open,03/01/2024,,,secret
1002,bob,5.25,1,04/01/2024,2024-01-05 09:30:00,leave at door,secret
`

const profile = `
tag_name = "col"
location = "UTC"
time_layouts = ["02/01/2006", "2006-01-02 15:04:05"]

[models.Order]
ignore = ["Internal"]

[models.Order.fields]
Customer = "customer_name"
`

func main() {
	// =========================================================================
	// PART 1: BUILD A CONVERTER FROM A PROFILE
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Building converter from profile...")

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	builder := typeconv.NewBuilder().
		WithProfileData([]byte(profile), typeconv.FormatAuto).
		WithLogger(logger)

	conv, err := builder.Build()
	if err != nil {
		log.Fatalf("❌ Builder failed: %v", err)
	}
	log.Printf("✅ Converter ready (tag %q, location %s).", conv.Options().TagName, conv.Options().Location)

	// =========================================================================
	// PART 2: CSV TO TYPED MODELS
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Converting CSV rows into orders...")

	table, err := typeconv.ParseCSV([]byte(ordersCSV))
	if err != nil {
		log.Fatalf("❌ CSV parse failed: %v", err)
	}

	// The profile maps Customer to customer_name; the CSV uses the tag name,
	// so only the ignore list is taken from the profile here.
	orders, err := typeconv.FromTable[Order](table, typeconv.Using(conv), typeconv.Ignore("Internal"))
	if err != nil {
		log.Fatalf("❌ Table conversion failed: %v", err)
	}
	for _, o := range orders {
		printOrder(o)
	}

	// =========================================================================
	// PART 3: WRITE A MODEL BACK INTO A ROW
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Filling an export row using the profile mapping...")

	export := typeconv.NewTable("order_id", "customer_name", "total", "status", "placed", "Shipped")
	row := export.NewRow()
	if err := conv.FillRow(orders[1], row, typeconv.WithModel(builder.Profile(), "Order")); err != nil {
		log.Fatalf("❌ Fill failed: %v", err)
	}
	log.Printf("✅ Row values: %v", row.Values())

	// =========================================================================
	// PART 4: SCALAR HELPERS
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 4: Best-effort scalar conversions...")

	log.Printf("   ToInt(\"42\", -1)       = %d", typeconv.ToInt("42", -1))
	log.Printf("   ToInt(\"n/a\", -1)      = %d", typeconv.ToInt("n/a", -1))
	log.Printf("   ToBool(nil, true)      = %t", typeconv.ToBool(nil, true))
	log.Printf("   EpochToDate(0, false)  = %s", conv.EpochToDate(0, false))
	log.Printf("   DateToEpoch(placed)    = %d", typeconv.DateToEpoch(orders[0].Placed, false))

	if statuses, err := typeconv.ToList[Status]([]string{"Open", "2"}); err == nil {
		log.Printf("   ToList[Status]         = %v", statuses)
	}

	log.Println("---")
	log.Println("✅ Done.")
}

func printOrder(o *Order) {
	shipped := "-"
	if o.Shipped != nil {
		shipped = o.Shipped.Format(time.RFC3339)
	}
	note := "-"
	if o.Note != nil {
		note = *o.Note
	}
	log.Printf("   #%d %-4s %7.2f %-9s placed=%s shipped=%s note=%s internal=%q",
		o.ID, o.Customer, o.Total, o.Status, o.Placed.Format("2006-01-02"), shipped, note, o.Internal)
}
