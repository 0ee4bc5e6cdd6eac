package constants

import "time"

// Portal entry points. The listing and detail routes live behind the SPA
// fragment, so page state is part of the URL fragment, not the query.
const (
	DefaultBaseURL        = "https://eaukcija.sud.rs"
	ListingPageFragment   = "%s/#/?stranica=%d"
	AuctionDetailFragment = "%s/#/aukcije/%s"
)

// CSS selectors of the rendered portal markup.
const (
	SelAuctionListItem  = ".auction-list-item"
	SelAuctionListCode  = ".auction-list-item__code"
	SelAuctionInfo      = ".auction-info"
	SelAuctionStatus    = ".auction-list-item__status"
	SelAuctionTitle     = ".auction-item-title"
	SelStateInfoLine    = ".auction-state-info__line"
	SelTab              = ".ant-tabs-nav .ant-tabs-tab"
	SelActiveTabPane    = ".ant-tabs-tabpane-active"
	SelActiveInfoRow = ".ant-tabs-tabpane-active .info-label-row"

	// The category, tags, executor and documents tabs all render their
	// values as category-name elements; only the details and location
	// tabs use info-label rows.
	SelActiveCategoryEl = ".ant-tabs-tabpane-active .category-name"
)

// Names of the detail tabs as rendered on the portal.
const (
	TabDetails   = "Детаљи"
	TabLocation  = "Локација"
	TabCategory  = "Категорија"
	TabTags      = "Тагови"
	TabExecutor  = "Јавни извршитељ"
	TabDocuments = "Документи"
)

// Field label prefixes inside tab panels and the state-info block.
const (
	LabelPublicationDate = "Датум објаве"
	LabelStartTime       = "Почетак еАукције"
	LabelEndTime         = "Крај еАукције"
	LabelStartingPrice   = "Почетна цена"
	LabelEstimatedValue  = "Процењена вредност"
	LabelBiddingStep     = "Лицитациони корак"
	LabelDescription     = "Опис:"
	LabelSaleNumber      = "Продаја:"
	LabelMunicipality    = "Општина:"
	LabelCity            = "Место:"
	LabelCadastralMun    = "Катастарска општина:"

	// Date values in the state-info block follow the word "еАукције".
	DateValueMarker = "еАукције"
)

// Auction status strings as rendered on the portal.
const (
	StatusTextConfirmationInProgress = "Потврђивање у току"
	StatusTextConfirmed              = "Потврђено"
	StatusTextExpired                = "Истекла"
)

// Waiting and retry policy of the scrape loop.
const (
	DefaultWaitTimeout = 10 * time.Second
	DetailWaitTimeout  = 20 * time.Second
	TabClickRetries    = 3
	TabClickRetryDelay = time.Second
)

// Cadastral registry (katastar) parameters. The registry is a classic
// WebForms page: selecting a municipality is a form postback keyed by the
// dropdown's form field name.
const (
	KatastarBaseURL          = "https://katastar.rgz.gov.rs/eKatastarPublic/PublicAccess.aspx"
	KatastarMunicipalityDrop = "ContentPlaceHolder1_getOpstinaKO_dropOpstina"
	KatastarGridView         = "ContentPlaceHolder1_getOpstinaKO_GridView"
	KatastarDropField        = "ctl00$ContentPlaceHolder1$getOpstinaKO$dropOpstina"
)
