package correlation

// DefaultEntries is the compiled-in correlation table. It mirrors the
// reference data maintained by treasury; deployments can replace it with a
// YAML file or the Postgres master table.
var DefaultEntries = []Entry{
	{CheckLabel: "BBVA FRANCES BYC", ProjectionLabel: "Bco BBVA BYC SA", Company: "BYC"},
	{CheckLabel: "BBVA FRANCES MPZ", ProjectionLabel: "Bco BBVA MPZ BYC SA", Company: "BYC"},
	{CheckLabel: "BBVA FRANCES MBZ", ProjectionLabel: "Bco BBVA MBZ SRL", Company: "MBZ"},
	{CheckLabel: "BBVA FRANCES MGX", ProjectionLabel: "Bco BBVA MGXD SRL", Company: "MGX"},
	{CheckLabel: "BBVA FRANCES RG2", ProjectionLabel: "Bco BBVA RG2", Company: "BYC"},
	{CheckLabel: "CREDICOOP BYC", ProjectionLabel: "Bco Credicoop BYC SA", Company: "BYC"},
	{CheckLabel: "CREDICOOP MGX", ProjectionLabel: "Bco Credicoop MGXD SRL", Company: "MGX"},
	{CheckLabel: "CREDICOOP MBZ", ProjectionLabel: "Bco Credicoop MBZ SRL", Company: "MBZ"},
	{CheckLabel: "CREDICOOP TMX", ProjectionLabel: "Bco Credicoop TMX SRL", Company: "TMX"},
	{CheckLabel: "DE LA NACION ARG. BYC", ProjectionLabel: "Bco Nacion BYC SA", Company: "BYC"},
	{CheckLabel: "DE LA NACION ARG MGX", ProjectionLabel: "Bco Nacion MGXD SRL", Company: "MGX"},
	{CheckLabel: "PATAGONIA MBZ", ProjectionLabel: "Bco Patagonia MBZ SRL", Company: "MBZ"},
	{CheckLabel: "SANTANDER RIO BYC", ProjectionLabel: "Bco Santander BYC SA", Company: "BYC"},
	{CheckLabel: "SANTANDER RIO MBZ", ProjectionLabel: "Bco Santander MBZ SRL", Company: "MBZ"},
	{CheckLabel: "SANTANDER MGXD", ProjectionLabel: "Bco Santander MGXD SRL", Company: "MGX"},
	{CheckLabel: "MERCADO PAGO BYC", ProjectionLabel: "MercadoPago BYC", Company: "BYC"},
	{CheckLabel: "MERCADO PAGO MGX", ProjectionLabel: "MercadoPago MGX", Company: "MGX"},
	{CheckLabel: "MERCADO PAGO MBZ", ProjectionLabel: "MercadoPago MBZ", Company: "MBZ"},
}
