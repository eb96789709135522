package sheets

import (
	"reflect"
	"testing"

	"stocktake/internal/domain/models"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		name string
		row  []interface{}
		want models.Product
	}{
		{
			name: "full row",
			row:  []interface{}{"Red Wine", "box", "6", "unit", "24", "Drinks", "Cellar"},
			want: models.Product{
				Name: "Red Wine", Unit: models.UnitBox, QuantityPerBox: 6,
				BoxUnit: models.ContentPiece, CurrentQuantity: 24,
				Category: "Drinks", Location: "Cellar",
			},
		},
		{
			name: "missing trailing columns default",
			row:  []interface{}{"Flour", "kilogram"},
			want: models.Product{Name: "Flour", Unit: models.UnitKilogram},
		},
		{
			name: "empty unit falls back to piece",
			row:  []interface{}{"Napkins"},
			want: models.Product{Name: "Napkins", Unit: models.UnitPiece},
		},
		{
			name: "comma decimal separator",
			row:  []interface{}{"Oil", "liter", "", "", "2,5"},
			want: models.Product{Name: "Oil", Unit: models.UnitLiter, CurrentQuantity: 2.5},
		},
		{
			name: "unparseable number becomes zero",
			row:  []interface{}{"Oil", "liter", "n/a"},
			want: models.Product{Name: "Oil", Unit: models.UnitLiter},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseRow(tt.row)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseRow() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
