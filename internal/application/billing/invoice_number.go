package billing

import (
	"fmt"
	"time"
)

// invoiceNoPrefix prefijo de todos los números de factura generados.
const invoiceNoPrefix = "INV-"

// newInvoiceNo deriva un número de factura del instante actual con resolución de
// microsegundos: INV-YYYYMMDDHHMMSSffffff. El formato es ordenable lexicográficamente
// y la resolución reduce la probabilidad de colisión; la unicidad real la garantiza
// el índice único de invoice_no más el reintento de la transacción completa.
func newInvoiceNo(now time.Time) string {
	return fmt.Sprintf("%s%s%06d", invoiceNoPrefix, now.Format("20060102150405"), now.Nanosecond()/1000)
}
