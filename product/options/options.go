package options

// ProductOptions represent options that can be used to configure a Find operation
type ProductOptions struct {
	// filters products that match any id in this slice
	IDs []string
	// filters products that have a price in this range (inclusive)
	Price *DecimalRange
	// filters products that were created in this range (inclusive)
	Created *TimeRange
}

func NewProductOptions() *ProductOptions {
	return &ProductOptions{}
}

func (this *ProductOptions) SetIDs(v ...string) *ProductOptions {
	this.IDs = v
	return this
}

func (this *ProductOptions) SetPriceRange(v *DecimalRange) *ProductOptions {
	this.Price = v
	return this
}

func (this *ProductOptions) SetCreatedRange(v *TimeRange) *ProductOptions {
	this.Created = v
	return this
}
