package worksheet

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"math"
	"math/rand"

	"englisharcade/internal/images"
	"englisharcade/internal/models"
)

// blankCell is what an empty or masked word renders as.
const blankCell = "______"

// ImageResolver supplies the picture for a word slot. Satisfied by
// *images.Store.
type ImageResolver interface {
	Resolve(ctx context.Context, word string, index int) images.Candidate
}

// Renderer turns a word list plus settings into the worksheet preview
// HTML. One renderer is shared across requests; it holds no per-call
// state.
type Renderer struct {
	images ImageResolver

	// shuffle is swappable so matching layouts are deterministic in
	// tests.
	shuffle func(n int, swap func(i, j int))
}

// NewRenderer creates a renderer backed by the given image resolver.
// A nil resolver renders picture layouts with blank boxes.
func NewRenderer(resolver ImageResolver) *Renderer {
	return &Renderer{
		images:  resolver,
		shuffle: rand.Shuffle,
	}
}

// Render produces the full worksheet preview for the given words and
// settings. Masking happens here, so callers always pass the original
// unmasked pairs.
func (r *Renderer) Render(ctx context.Context, title string, pairs []models.WordPair, st models.Settings) (template.HTML, error) {
	masked := MaskWordPairs(pairs, st.TestMode, st.NumLettersToHide)
	dups := FindDuplicates(pairs)

	var (
		body       template.HTML
		printStyle bool
		err        error
	)
	switch st.Layout {
	case models.LayoutDefault:
		body, err = r.renderDefault(masked, pairs, dups)
		printStyle = true
	case models.LayoutFourCol:
		body, err = r.renderFourCol(masked, pairs, dups)
		printStyle = true
	case models.LayoutPictureList:
		body, err = r.renderPictureList(ctx, masked, pairs, dups, st)
		printStyle = true
	case models.LayoutPictureList2:
		body, err = r.renderPictureList2Col(ctx, masked, st)
		printStyle = true
	case models.LayoutFiveColImages:
		body, err = r.renderPictureCards(ctx, masked, st, 5)
	case models.LayoutSixColImages:
		body, err = r.renderPictureCards(ctx, masked, st, 6)
		printStyle = true
	case models.LayoutPictureQuiz:
		body, err = r.renderPictureQuiz(ctx, masked, st, 3)
		printStyle = true
	case models.LayoutPictureQuiz5:
		body, err = r.renderPictureQuiz(ctx, masked, st, 5)
		printStyle = true
	case models.LayoutPictureMatch:
		body, err = r.renderPictureMatching(ctx, masked, st)
	case models.LayoutEngKorMatch:
		body, err = r.renderEngKorMatching(masked, st)
	default:
		body, err = r.renderFallbackGrid(masked, st)
	}
	if err != nil {
		return "", fmt.Errorf("render %s layout: %w", st.Layout, err)
	}

	titleSize := st.FontSize + 6
	if titleSize < 18 {
		titleSize = 18
	}
	return execute("page", pageData{
		Title:      title,
		Font:       st.Font,
		FontSize:   st.FontSize,
		TitleSize:  titleSize,
		PrintStyle: printStyle,
		Body:       body,
	})
}

// execute runs one named template from the parsed set.
func execute(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := worksheetTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// cell wraps word text for a table cell: blank fill-in line when the
// word is masked or missing, and an orange screen-only overlay when
// the word list contains it twice.
func cell(word string, dup bool) template.HTML {
	content := template.HTMLEscapeString(word)
	if content == "" {
		content = blankCell
	}
	overlay := ""
	if dup {
		overlay = `<span class="dup-overlay-screen" style="position:absolute;top:0;left:0;width:100%;height:100%;background:rgba(255,140,0,0.25);pointer-events:none;z-index:1;"></span>`
	}
	return template.HTML(`<span style="position:relative;display:inline-block;width:100%;">` + overlay +
		`<span style="position:relative;z-index:2;">` + content + `</span></span>`)
}

// displayEng is the English text shown on card and quiz layouts: the
// blank line only when the test mode hides English, otherwise the word
// itself falling back through the preserved original.
func displayEng(p models.WordPair, mode models.TestMode) string {
	if mode == models.TestModeHideEng {
		return blankCell
	}
	if p.Eng != "" {
		return p.Eng
	}
	if p.OriginalEng != "" {
		return p.OriginalEng
	}
	return blankCell
}

// lookupWord is the term used for image search: always the unmasked
// English word.
func lookupWord(p models.WordPair) string {
	if p.OriginalEng != "" {
		return p.OriginalEng
	}
	return p.Eng
}

func (r *Renderer) imageFor(ctx context.Context, p models.WordPair, i int, st models.Settings) template.HTML {
	if r.images == nil {
		return images.Blank().HTML(st.ImageSize)
	}
	return r.images.Resolve(ctx, lookupWord(p), i).HTML(st.ImageSize)
}

func (r *Renderer) renderDefault(masked, original []models.WordPair, dups DuplicateSet) (template.HTML, error) {
	rows := make([]listRow, len(masked))
	for i, p := range masked {
		rows[i] = listRow{
			Num: i + 1,
			Eng: cell(p.Eng, dups.IsDuplicateEng(original[i].Eng)),
			Kor: cell(p.Kor, dups.IsDuplicateKor(original[i].Kor)),
		}
	}
	return execute("default", rows)
}

func (r *Renderer) renderFourCol(masked, original []models.WordPair, dups DuplicateSet) (template.HTML, error) {
	half := int(math.Ceil(float64(len(masked)) / 2))

	rows := make([]splitRow, half)
	for i := 0; i < half; i++ {
		row := splitRow{
			LeftNum:  fmt.Sprint(i + 1),
			LeftEng:  cell(masked[i].Eng, dups.IsDuplicateEng(original[i].Eng)),
			LeftKor:  cell(masked[i].Kor, dups.IsDuplicateKor(original[i].Kor)),
			RightEng: cell("", false),
			RightKor: cell("", false),
		}
		if j := half + i; j < len(masked) {
			row.RightNum = fmt.Sprint(j + 1)
			row.RightEng = cell(masked[j].Eng, dups.IsDuplicateEng(original[j].Eng))
			row.RightKor = cell(masked[j].Kor, dups.IsDuplicateKor(original[j].Kor))
		}
		rows[i] = row
	}
	return execute("4col", rows)
}

func (r *Renderer) renderPictureList(ctx context.Context, masked, original []models.WordPair, dups DuplicateSet, st models.Settings) (template.HTML, error) {
	rowHeight := st.ImageSize + st.ImageGap
	if rowHeight < 100 {
		rowHeight = 100
	}
	cellPadding := st.ImageGap / 2
	if cellPadding < 8 {
		cellPadding = 8
	}

	rows := make([]pictureRow, len(masked))
	for i, p := range masked {
		rows[i] = pictureRow{
			Num:   i + 1,
			Image: r.imageFor(ctx, p, i, st),
			Eng:   cell(p.Eng, dups.IsDuplicateEng(original[i].Eng)),
			Kor:   cell(p.Kor, dups.IsDuplicateKor(original[i].Kor)),
		}
	}
	return execute("picture-list", pictureListData{
		Rows:        rows,
		RowHeight:   rowHeight,
		CellPadding: cellPadding,
	})
}

// pictureList2Rows is how many rows each column of the two-column
// picture list holds; words past the second column are not shown.
const pictureList2Rows = 8

func (r *Renderer) renderPictureList2Col(ctx context.Context, masked []models.WordPair, st models.Settings) (template.HTML, error) {
	rows := make([]splitPictureRow, pictureList2Rows)
	for i := 0; i < pictureList2Rows; i++ {
		row := splitPictureRow{}
		if i < len(masked) {
			p := masked[i]
			row.LeftNum = fmt.Sprint(i + 1)
			row.LeftImage = r.imageFor(ctx, p, i, st)
			row.LeftEng = cell(p.Eng, false)
			row.LeftKor = cell(p.Kor, false)
		}
		if j := pictureList2Rows + i; j < len(masked) && j < pictureList2Rows*2 {
			p := masked[j]
			row.RightNum = fmt.Sprint(j + 1)
			row.RightImage = r.imageFor(ctx, p, j, st)
			row.RightEng = cell(p.Eng, false)
			row.RightKor = cell(p.Kor, false)
		}
		rows[i] = row
	}
	return execute("picture-list-2col", rows)
}

func (r *Renderer) renderPictureCards(ctx context.Context, masked []models.WordPair, st models.Settings, columns int) (template.HTML, error) {
	cards := make([]cardData, len(masked))
	for i, p := range masked {
		kor := p.Kor
		if kor == "" {
			kor = blankCell
		}
		cards[i] = cardData{
			Image: r.imageFor(ctx, p, i, st),
			Eng:   displayEng(p, st.TestMode),
			Kor:   kor,
		}
	}

	baseGap := st.ImageGap
	minGap := 10
	if columns == 6 {
		minGap = 12
	}
	if baseGap < minGap {
		baseGap = minGap
	}
	colGap := baseGap / 2
	if colGap < 8 {
		colGap = 8
	}
	padding := baseGap / 2
	minPad := 15
	if columns == 6 {
		minPad = 12
	}
	if padding < minPad {
		padding = minPad
	}

	return execute("picture-cards", cardGridData{
		Cards:   cards,
		Columns: columns,
		RowGap:  baseGap,
		ColGap:  colGap,
		Padding: padding,
	})
}

func (r *Renderer) renderPictureQuiz(ctx context.Context, masked []models.WordPair, st models.Settings, columns int) (template.HTML, error) {
	chips := make([]string, len(masked))
	cells := make([]template.HTML, len(masked))
	for i, p := range masked {
		chips[i] = displayEng(p, st.TestMode)
		cells[i] = r.imageFor(ctx, p, i, st)
	}

	rowGap := st.ImageGap
	if rowGap < 16 {
		rowGap = 16
	}
	var colGap, minColGap int
	if columns == 5 {
		colGap = int(math.Round(float64(st.ImageGap) * 0.6))
		minColGap = 16
	} else {
		colGap = int(math.Round(float64(st.ImageGap) * 0.75))
		minColGap = 20
	}
	if colGap < minColGap {
		colGap = minColGap
	}

	return execute("picture-quiz", quizData{
		Chips:   chips,
		Cells:   cells,
		Columns: columns,
		RowGap:  rowGap,
		ColGap:  colGap,
	})
}

// pictureMatchLimit and engKorMatchLimit cap the matching layouts so
// the drawn lines stay legible on one page.
const (
	pictureMatchLimit = 8
	engKorMatchLimit  = 10
)

func (r *Renderer) renderPictureMatching(ctx context.Context, masked []models.WordPair, st models.Settings) (template.HTML, error) {
	limited := masked
	if len(limited) > pictureMatchLimit {
		limited = limited[:pictureMatchLimit]
	}

	itemHeight := st.ImageSize + 20
	if itemHeight < 60 {
		itemHeight = 60
	}
	totalHeight := len(limited)*itemHeight + (len(limited)-1)*st.ImageGap

	left := make([]matchItem, len(limited))
	for i, p := range limited {
		left[i] = matchItem{Image: r.imageFor(ctx, p, i, st)}
	}

	shuffled := make([]models.WordPair, len(limited))
	copy(shuffled, limited)
	r.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	right := make([]matchItem, len(shuffled))
	for i, p := range shuffled {
		text := p.Eng
		if text == "" {
			text = blankCell
		}
		right[i] = matchItem{Text: text}
	}

	return execute("picture-matching", matchData{
		Left:        left,
		Right:       right,
		ItemHeight:  itemHeight,
		Gap:         st.ImageGap,
		TotalHeight: totalHeight,
		Pictures:    true,
	})
}

func (r *Renderer) renderEngKorMatching(masked []models.WordPair, st models.Settings) (template.HTML, error) {
	limited := masked
	if len(limited) > engKorMatchLimit {
		limited = limited[:engKorMatchLimit]
	}

	itemHeight := st.ImageGap + 30
	if itemHeight < 50 {
		itemHeight = 50
	}
	totalHeight := len(limited)*itemHeight + (len(limited)-1)*st.ImageGap

	left := make([]matchItem, len(limited))
	for i, p := range limited {
		text := p.Eng
		if text == "" {
			text = p.OriginalEng
		}
		if text == "" {
			text = "word"
		}
		left[i] = matchItem{Text: text}
	}

	shuffled := make([]models.WordPair, len(limited))
	copy(shuffled, limited)
	r.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	right := make([]matchItem, len(shuffled))
	for i, p := range shuffled {
		text := p.Kor
		if text == "" {
			text = "word"
		}
		right[i] = matchItem{Text: text}
	}

	return execute("eng-kor-matching", matchData{
		Left:        left,
		Right:       right,
		ItemHeight:  itemHeight,
		Gap:         st.ImageGap,
		TotalHeight: totalHeight,
	})
}

func (r *Renderer) renderFallbackGrid(masked []models.WordPair, st models.Settings) (template.HTML, error) {
	cards := make([]cardData, len(masked))
	for i, p := range masked {
		eng, kor := p.Eng, p.Kor
		if eng == "" {
			eng = blankCell
		}
		if kor == "" {
			kor = blankCell
		}
		cards[i] = cardData{Eng: eng, Kor: kor}
	}
	return execute("fallback-grid", fallbackData{Cards: cards, RowGap: st.ImageGap})
}
