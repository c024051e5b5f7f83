// Package registry holds the closed coded value sets of the MIABIS on FHIR
// implementation guide, verified against the FSH source in
// BBMRI-cz/miabis-on-fhir. Registries are immutable, ordered, and never
// change at runtime; builders draw from them only through the random
// provider's choice operations.
package registry

// Code is one (code, display) pair of a coding category.
type Code struct {
	Code    string `json:"code"`
	Display string `json:"display"`
}

// ICD10Diagnoses is the diagnosis value set (malignant neoplasms).
var ICD10Diagnoses = []Code{
	{"C34.1", "Upper lobe, bronchus or lung"},
	{"C34.2", "Middle lobe, bronchus or lung"},
	{"C34.3", "Lower lobe, bronchus or lung"},
	{"C50.9", "Breast, unspecified"},
	{"C50.4", "Upper-outer quadrant of breast"},
	{"C18.0", "Caecum"},
	{"C18.2", "Ascending colon"},
	{"C18.7", "Sigmoid colon"},
	{"C61", "Malignant neoplasm of prostate"},
	{"C25.0", "Head of pancreas"},
	{"C56", "Malignant neoplasm of ovary"},
	{"C64", "Malignant neoplasm of kidney, except renal pelvis"},
	{"C16.0", "Cardia"},
	{"C67.9", "Bladder, unspecified"},
	{"C71.9", "Brain, unspecified"},
	{"C73", "Malignant neoplasm of thyroid gland"},
	{"C43.5", "Malignant melanoma of trunk"},
	{"C22.0", "Liver cell carcinoma"},
	{"C15.9", "Oesophagus, unspecified"},
	{"C20", "Malignant neoplasm of rectum"},
}

// SampleTypes is miabis-detailed-samply-type-cs (individual specimen types).
var SampleTypes = []Code{
	{"TissueFreshFrozen", "Tissue (fresh frozen)"},
	{"TissueFixed", "Tissue (fixed)"},
	{"WholeBlood", "Whole blood"},
	{"Plasma", "Plasma"},
	{"Serum", "Serum"},
	{"DNA", "DNA"},
	{"RNA", "RNA"},
	{"BuffyCoat", "Buffy coat"},
	{"Urine", "Urine"},
	{"Saliva", "Saliva"},
	{"CancerCellLine", "Cancer cell lines"},
}

// CollectionSampleTypes is miabis-collection-sample-type-cs (collection level).
var CollectionSampleTypes = []string{
	"TissueFrozen", "TissueFFPE", "Blood", "Plasma", "Serum", "DNA",
	"RNA", "BuffyCoat", "Urine", "Saliva", "CancerCellLine",
}

// StorageTemperatures is miabis-storage-temperature-cs. The codes carry
// literal minus signs.
var StorageTemperatures = []Code{
	{"RT", "Room temperature"},
	{"2to10", "between 2 and 10 degrees Celsius"},
	{"-18to-35", "between -18 and -35 degrees Celsius"},
	{"-60to-85", "between -60 and -85 degrees Celsius"},
	{"LN", "liquid nitrogen, -150 to -196 degrees Celsius"},
	{"Other", "any other temperature or long time storage information"},
}

// SampleStorage maps a detailed sample type to its storage temperature code.
var SampleStorage = map[string]string{
	"TissueFreshFrozen": "LN",
	"TissueFixed":       "RT",
	"WholeBlood":        "-18to-35",
	"Plasma":            "-60to-85",
	"Serum":             "-60to-85",
	"DNA":               "-18to-35",
	"RNA":               "-60to-85",
	"BuffyCoat":         "-60to-85",
	"Urine":             "-18to-35",
	"Saliva":            "2to10",
	"CancerCellLine":    "LN",
}

// BodySites is the SNOMED CT body structure value set.
var BodySites = []Code{
	{"39607008", "Lung structure"},
	{"76752008", "Breast structure"},
	{"71854001", "Colon structure"},
	{"41216001", "Prostatic structure"},
	{"15776009", "Pancreatic structure"},
	{"15497006", "Ovarian structure"},
	{"64033007", "Kidney structure"},
	{"69695003", "Stomach structure"},
	{"89837001", "Urinary bladder structure"},
	{"12738006", "Brain structure"},
	{"69748006", "Thyroid structure"},
	{"39937001", "Skin structure"},
	{"10200004", "Liver structure"},
	{"32849002", "Oesophageal structure"},
	{"34402009", "Rectum structure"},
}

// ICD10BodySite maps an ICD-10 category prefix to its SNOMED body site code.
var ICD10BodySite = map[string]string{
	"C34": "39607008",
	"C50": "76752008",
	"C18": "71854001",
	"C20": "34402009",
	"C61": "41216001",
	"C25": "15776009",
	"C56": "15497006",
	"C64": "64033007",
	"C16": "69695003",
	"C67": "89837001",
	"C71": "12738006",
	"C73": "69748006",
	"C43": "39937001",
	"C22": "10200004",
	"C15": "32849002",
}

// DatasetTypes is miabis-dataset-type-CS (donor level).
var DatasetTypes = []string{
	"Lifestyle", "BiologicalSamples", "SurveyData", "ImagingData",
	"MedicalRecords", "NationalRegistries", "GenealogicalRecords",
	"PhysioBiochemicalData", "Other",
}

// CollectionDatasetTypes is miabis-collection-dataset-typeCS. The "Lifesyle"
// typo is carried over from the FSH source on purpose.
var CollectionDatasetTypes = []string{
	"Lifesyle", "Environmental", "Physiological", "Biochemical",
	"Clinical", "Psychological", "Genomic", "Proteomic",
	"Metabolomic", "BodyImage", "WholeSlideImage", "PhotoImage",
	"GenealogicalRecords", "Other",
}

// CollectionDesigns is miabis-collection-design-cs.
var CollectionDesigns = []string{
	"CaseControl", "CrossSectional", "LongitudinalCohort",
	"DiseaseSpecificCohort", "PopulationBasedCohort", "TwinStudy",
	"QualityControl", "BirthCohort", "RareDiseaseCollection", "Other",
}

// UseAccessConditions is miabis-use-and-access-conditions-cs.
var UseAccessConditions = []string{
	"CommercialUse", "Collaboration", "SpecificResearchUse",
	"GeneticDataUse", "OutsideEUAccess", "Xenograft", "OtherAnimalWork", "Other",
}

// InclusionCriteria is miabis-inclusion-criteria-cs.
var InclusionCriteria = []string{
	"HealthStatus", "HospitalPatient", "UseOfMedication", "Gravidity",
	"AgeGroup", "FamilialStatus", "Sex", "CountryOfResidence",
	"EthnicOrigin", "PopulationRepresentative", "Lifestyle", "Other",
}

// InfrastructuralCapabilities holds the only three codes that exist in
// miabis-infrastructural-capabilities-cs.
var InfrastructuralCapabilities = []string{"SampleStorage", "DataStorage", "Biosafety"}

// QualityStandards are the quality management standard strings.
var QualityStandards = []string{"ISO 20387", "ISO 9001", "ISO 15189", "OECD Guidelines"}

// Genders is the administrative-gender subset used for donors.
var Genders = []string{"male", "female"}

// Name pools for synthetic contact persons and donors.
var (
	FirstNamesMale   = []string{"Jan", "Martin", "Petr", "Milan", "Thomas", "Hans", "Erik", "Lars", "Andrei", "Marco"}
	FirstNamesFemale = []string{"Eva", "Jana", "Maria", "Petra", "Anna", "Helga", "Ingrid", "Sofia", "Elena", "Lucia"}
	LastNames        = []string{
		"Novak", "Svoboda", "Mueller", "Schmidt", "Jensen", "Larsson", "Popov", "Rossi", "Silva", "Patel",
		"Horvat", "Kowalski", "Virtanen", "Dupont", "Garcia", "Fernandez", "Bauer", "Fischer", "Weber", "Wagner",
	}
)

// FirstNames returns the combined given-name pool.
func FirstNames() []string {
	out := make([]string, 0, len(FirstNamesMale)+len(FirstNamesFemale))
	out = append(out, FirstNamesMale...)
	out = append(out, FirstNamesFemale...)
	return out
}

// Countries are ISO country codes with biobank presence.
var Countries = []string{"CZ", "DE", "AT", "SE", "FI", "IT", "ES", "FR", "NL", "PL", "SI", "PT", "NO", "DK", "BE"}

// Cities maps a country code to its city pool.
var Cities = map[string][]string{
	"CZ": {"Prague", "Brno", "Ostrava"},
	"DE": {"Berlin", "Munich", "Hannover", "Hamburg"},
	"AT": {"Vienna", "Graz", "Innsbruck"},
	"SE": {"Stockholm", "Gothenburg", "Uppsala"},
	"FI": {"Helsinki", "Turku", "Tampere"},
	"IT": {"Rome", "Milan", "Florence"},
	"ES": {"Madrid", "Barcelona", "Valencia"},
	"FR": {"Paris", "Lyon", "Marseille"},
	"NL": {"Amsterdam", "Rotterdam", "Utrecht"},
	"PL": {"Warsaw", "Krakow", "Gdansk"},
	"SI": {"Ljubljana", "Maribor"},
	"PT": {"Lisbon", "Porto"},
	"NO": {"Oslo", "Bergen"},
	"DK": {"Copenhagen", "Aarhus"},
	"BE": {"Brussels", "Leuven"},
}

// BiobankSuffixes are name fragments for synthetic biobank names.
var BiobankSuffixes = []string{
	"University Hospital Biobank", "Cancer Research Biobank", "National Biobank",
	"Medical Center Biobank", "Clinical Research Biobank", "Integrated Biobank",
	"Genomics & Tissue Bank", "Translational Research Biobank",
}

// CollectionNames are names for synthetic collections, assigned in order.
var CollectionNames = []string{
	"Solid Tumors", "Hematological Malignancies", "Breast Cancer Cohort",
	"Lung Cancer Registry", "Colorectal Cancer Study", "Prostate Cancer Cohort",
	"Pancreatic Cancer Collection", "Rare Tumors Collection",
	"Population Health Study", "Metabolic Diseases Cohort",
	"Cardiovascular Sample Repository", "Neurological Disorders Collection",
}

// Display returns the display string for a code within a table, falling back
// to the code itself for unknown entries.
func Display(table []Code, code string) string {
	for _, c := range table {
		if c.Code == code {
			return c.Display
		}
	}
	return code
}

// Contains reports whether code appears in table.
func Contains(table []Code, code string) bool {
	for _, c := range table {
		if c.Code == code {
			return true
		}
	}
	return false
}

// ContainsString reports whether code appears in a plain-string value set.
func ContainsString(set []string, code string) bool {
	for _, c := range set {
		if c == code {
			return true
		}
	}
	return false
}

// NamedSet is a registry with its coding category name, for listing.
type NamedSet struct {
	Name  string `json:"name"`
	Codes []Code `json:"codes"`
}

// Registries lists every coded value set by category name, in a fixed order.
func Registries() []NamedSet {
	return []NamedSet{
		{"icd10-diagnoses", ICD10Diagnoses},
		{"sample-types", SampleTypes},
		{"collection-sample-types", plain(CollectionSampleTypes)},
		{"storage-temperatures", StorageTemperatures},
		{"body-sites", BodySites},
		{"dataset-types", plain(DatasetTypes)},
		{"collection-dataset-types", plain(CollectionDatasetTypes)},
		{"collection-designs", plain(CollectionDesigns)},
		{"use-access-conditions", plain(UseAccessConditions)},
		{"inclusion-criteria", plain(InclusionCriteria)},
		{"infrastructural-capabilities", plain(InfrastructuralCapabilities)},
		{"sample-source", []Code{{Code: "Human", Display: "Human"}}},
		{"genders", plain(Genders)},
	}
}

func plain(codes []string) []Code {
	out := make([]Code, len(codes))
	for i, c := range codes {
		out[i] = Code{Code: c, Display: c}
	}
	return out
}
