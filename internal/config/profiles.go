package config

// Logical field names a VendorProfile can map spreadsheet headers onto.
const (
	FieldSKU            = "sku"
	FieldStyle          = "style"
	FieldName           = "name"
	FieldDescription    = "description"
	FieldFeatures       = "features"
	FieldSpecifications = "specifications"
	FieldApplications   = "applications"
	FieldBrand          = "brand"
	FieldCategory       = "category"
	FieldSubcategory    = "subcategory"
	FieldPrice          = "price"
	FieldCostPrice      = "cost_price"
	FieldMSRP           = "msrp"
	FieldStock          = "stock"
	FieldStockType      = "stock_type"
	FieldBarcode        = "barcode"
	FieldWeight         = "weight"
	FieldLength         = "length"
	FieldWidth          = "width"
	FieldHeight         = "height"
	FieldSize           = "size"
	FieldColor          = "color"
	FieldImage          = "image"
	FieldStatus         = "status"
)

// Image directory conventions a vendor ships images in.
const (
	ImagesFlat  = "flat"  // one directory, files named after the part number
	ImagesIndex = "index" // one directory, indexed by filename prefix before -/_/space
	ImagesTree  = "tree"  // nested folders, part-number dirs containing a JPEG/JPG leaf
)

// VendorProfile describes how one vendor's spreadsheets map onto the catalog.
type VendorProfile struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`

	// FieldAliases maps logical fields to acceptable header spellings.
	// Matching is case-insensitive, exact first then substring.
	FieldAliases map[string][]string `yaml:"field_aliases"`

	// HeaderAnchors locate the header row: the first of the leading rows
	// containing any anchor (case-insensitive) is the header.
	HeaderAnchors []string `yaml:"header_anchors,omitempty"`

	// StyleFromSKU derives the group style by trimming the last dash
	// segment of the SKU when no style column exists.
	StyleFromSKU bool `yaml:"style_from_sku,omitempty"`

	// BrandPrefix is a vendor prefix stripped from SKUs before style
	// derivation and image lookup (e.g. "CHT-").
	BrandPrefix string `yaml:"brand_prefix,omitempty"`

	// DefaultBrand names the brand when the sheet has no brand column.
	DefaultBrand string `yaml:"default_brand,omitempty"`

	// ComposeName joins every matched name column (in alias order) into
	// the product name instead of taking the first.
	ComposeName bool `yaml:"compose_name,omitempty"`

	Variants VariantRules `yaml:"variants,omitempty"`

	// Images selects the on-disk layout convention for the vendor's
	// image drops.
	Images string `yaml:"images,omitempty"`

	// ImageMapCSV enables the sidecar CSV (STYLE,Image columns) that maps
	// style codes to image filenames.
	ImageMapCSV bool `yaml:"image_map_csv,omitempty"`

	// RequireImage skips products with no located image instead of
	// importing them with a warning.
	RequireImage bool `yaml:"require_image,omitempty"`

	// DescriptionSections lists the logical fields assembled, in order,
	// into the product description.
	DescriptionSections []string `yaml:"description_sections,omitempty"`
}

// VariantRules controls how variant attributes are extracted from rows.
type VariantRules struct {
	// UseColumns reads size/color from their mapped columns first.
	UseColumns bool `yaml:"use_columns,omitempty"`
	// SuffixVocabulary matches the SKU suffix against known size tokens
	// and color codes.
	SuffixVocabulary bool `yaml:"suffix_vocabulary,omitempty"`
	// NameDescriptors extracts trailing ", <size>" / ", <color>"
	// descriptors from the item name.
	NameDescriptors bool `yaml:"name_descriptors,omitempty"`
}

// BuiltinProfiles returns the vendor profiles shipped with the tool.
func BuiltinProfiles() map[string]*VendorProfile {
	return map[string]*VendorProfile{
		"gsa": {
			Name:        "gsa",
			Description: "Generic bulk sheets (GSA and standard formats)",
			FieldAliases: map[string][]string{
				FieldSKU:         {"vendor part number", "sku", "part number", "manufacturer_part_number", "item code", "model number", "model"},
				FieldName:        {"product information", "item_name", "product name", "name", "title"},
				FieldDescription: {"item_description", "description"},
				FieldBrand:       {"manufacturer information", "manufacturer", "brand", "mfc_name"},
				FieldPrice:       {"commercial price", "unit price", "price", "retail price", "mfc_price", "commercial_price"},
				FieldCostPrice:   {"sup cost", "sup_cost", "dealer_cost", "wholesale price"},
				FieldMSRP:        {"manufacturer's suggested retail price", "msrp"},
				FieldCategory:    {"category", "product_info_code"},
				FieldStock:       {"stock", "quantity", "qty"},
				FieldBarcode:     {"upc", "barcode", "ean"},
				FieldWeight:      {"weight", "weight_lbs"},
				FieldLength:      {"length"},
				FieldWidth:       {"width"},
				FieldHeight:      {"height"},
				FieldImage:       {"photo file reference", "default_photo", "photo", "image"},
				FieldStatus:      {"status"},
			},
			HeaderAnchors: []string{"sku", "vendor part number", "manufacturer_part_number", "item_name"},
			Images:        ImagesFlat,
			Variants:      VariantRules{UseColumns: true},
		},
		"pip": {
			Name:        "pip",
			Description: "PIP safety gear sheets (STYLE grouping, sectioned descriptions)",
			FieldAliases: map[string][]string{
				FieldSKU:            {"sku"},
				FieldStyle:          {"style"},
				FieldName:           {"brand with marks", "short description"},
				FieldDescription:    {"description"},
				FieldFeatures:       {"features"},
				FieldSpecifications: {"specs"},
				FieldApplications:   {"applications"},
				FieldBrand:          {"brand"},
				FieldCategory:       {"select code"},
				FieldSubcategory:    {"commodity code"},
				FieldPrice:          {"ada price", "site price"},
				FieldCostPrice:      {"price per um"},
				FieldStockType:      {"status", "stock type"},
				FieldBarcode:        {"upc"},
				FieldSize:           {"size"},
				FieldColor:          {"color"},
				FieldStatus:         {"status"},
			},
			HeaderAnchors:       []string{"style", "sku"},
			ComposeName:         true,
			Images:              ImagesIndex,
			ImageMapCSV:         true,
			RequireImage:        true,
			Variants:            VariantRules{UseColumns: true, SuffixVocabulary: true},
			DescriptionSections: []string{FieldDescription, FieldFeatures, FieldSpecifications, FieldApplications},
		},
		"carhartt": {
			Name:        "carhartt",
			Description: "Carhartt apparel sheets (style derived from part number)",
			FieldAliases: map[string][]string{
				FieldSKU:         {"ada vendor_part_number", "manufacturer_part_number", "vendor_part_number"},
				FieldName:        {"item_name"},
				FieldDescription: {"item_description"},
				FieldBrand:       {"manufacturer"},
				FieldPrice:       {"website sale price", "commercial_price"},
				FieldCostPrice:   {"sup cost"},
				FieldMSRP:        {"mfc_price"},
				FieldBarcode:     {"upc - style", "upc"},
				FieldCategory:    {"item_type"},
				FieldStatus:      {"status"},
			},
			HeaderAnchors: []string{"manufacturer_part_number", "item_name"},
			StyleFromSKU:  true,
			BrandPrefix:   "CHT-",
			DefaultBrand:  "Carhartt",
			Images:        ImagesTree,
			Variants:      VariantRules{SuffixVocabulary: true},
		},
		"wolverine": {
			Name:        "wolverine",
			Description: "Wolverine footwear sheets (style-size part numbers)",
			FieldAliases: map[string][]string{
				FieldSKU:         {"manufacturer_part_number", "vendor_part_number"},
				FieldName:        {"item_name"},
				FieldDescription: {"item_description"},
				FieldBrand:       {"manufacturer"},
				FieldPrice:       {"website price 45% gm", "commercial_price"},
				FieldCostPrice:   {"sup cost"},
				FieldBarcode:     {"upc"},
				FieldCategory:    {"item_type"},
			},
			HeaderAnchors: []string{"manufacturer_part_number", "item_name"},
			StyleFromSKU:  true,
			DefaultBrand:  "Wolverine",
			Images:        ImagesFlat,
			Variants:      VariantRules{SuffixVocabulary: true},
		},
		"occunomix": {
			Name:        "occunomix",
			Description: "OccuNomix sheets (STYLE grouping, name descriptors)",
			FieldAliases: map[string][]string{
				FieldSKU:         {"sku"},
				FieldStyle:       {"style"},
				FieldName:        {"item description", "item_description", "description"},
				FieldCategory:    {"major"},
				FieldSubcategory: {"subcategory", "sub category", "category"},
				FieldPrice:       {"ada site price", "ada price", "site price"},
				FieldCostPrice:   {"lev2", "cost"},
				FieldBarcode:     {"upc"},
				FieldLength:      {"length"},
				FieldWidth:       {"width"},
				FieldHeight:      {"height"},
				FieldWeight:      {"net weight (lb)", "net weight", "weight"},
				FieldImage:       {"images", "image", "photos"},
			},
			HeaderAnchors: []string{"style", "sku"},
			DefaultBrand:  "OccuNomix",
			Images:        ImagesFlat,
			Variants:      VariantRules{SuffixVocabulary: true, NameDescriptors: true},
		},
	}
}

// Profiles merges user-configured vendor profiles over the built-ins.
func (c *Config) Profiles() map[string]*VendorProfile {
	merged := BuiltinProfiles()
	for name, p := range c.Vendors {
		if p == nil {
			continue
		}
		if p.Name == "" {
			p.Name = name
		}
		merged[name] = p
	}
	return merged
}

// Profile looks up a vendor profile by name.
func (c *Config) Profile(name string) (*VendorProfile, bool) {
	p, ok := c.Profiles()[name]
	return p, ok
}

// GroupsByStyle reports whether rows should be grouped on a style code
// rather than imported one product per row.
func (p *VendorProfile) GroupsByStyle() bool {
	if p.StyleFromSKU {
		return true
	}
	_, ok := p.FieldAliases[FieldStyle]
	return ok
}
