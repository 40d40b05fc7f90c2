package errs

// Standard messages shared by several call sites.
const (
	// image creation
	ImageNotRaw    = "Image is not raw"
	ImageNotForged = "Image is not forged"
	NoPixels       = "Cannot forge an image without pixels (sizes must be > 0)"

	// data type
	DataTypeNotSupported = "Data type not supported"
	WrongDataType        = "Data type does not match"

	// dimensionality and sizes
	SizeExceedsLimit           = "Size exceeds address limit"
	IllegalDimensionality      = "Illegal dimensionality"
	DimensionalityNotSupported = "Dimensionality not supported"
	DimensionalitiesDontMatch  = "Dimensionalities don't match"
	IllegalDimension           = "Illegal dimension"
	SizesDontMatch             = "Sizes don't match"
	NTensorElemDontMatch       = "Number of tensor elements doesn't match"

	// properties
	NoNormalStride         = "Image has a non-normal stride"
	InconsistentColorSpace = "Image's number of tensor elements and color space are inconsistent"
	UnknownColorSpace      = "Color space is not known"

	// indexing
	IndexOutOfRange       = "Index out of range"
	CoordinatesOutOfRange = "Coordinates out of range"

	// arrays
	ArrayIllegalSize          = "Array has an illegal size"
	ArraySizesDontMatch       = "Array sizes don't match"
	ArrayOverflow             = "Array overflow"
	ArrayParameterWrongLength = "Array parameter has the wrong number of elements"

	// parameters
	InvalidParameter    = "Parameter has invalid value"
	InvalidFlag         = "Invalid flag"
	ParameterOutOfRange = "Parameter value out of range"
	AllocationFailed    = "Memory allocation failed"
	CorruptSnapshot     = "Snapshot data is corrupt"
	UnsupportedSnapshot = "Snapshot format is not supported"
)
