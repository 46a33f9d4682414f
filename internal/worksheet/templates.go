package worksheet

import "html/template"

type pageData struct {
	Title      string
	Font       string
	FontSize   int
	TitleSize  int
	PrintStyle bool
	Body       template.HTML
}

type listRow struct {
	Num      int
	Eng, Kor template.HTML
}

type splitRow struct {
	LeftNum, RightNum  string
	LeftEng, LeftKor   template.HTML
	RightEng, RightKor template.HTML
}

type pictureRow struct {
	Num      int
	Image    template.HTML
	Eng, Kor template.HTML
}

type pictureListData struct {
	Rows        []pictureRow
	RowHeight   int
	CellPadding int
}

type splitPictureRow struct {
	LeftNum, RightNum     string
	LeftImage, RightImage template.HTML
	LeftEng, LeftKor      template.HTML
	RightEng, RightKor    template.HTML
}

type cardData struct {
	Image    template.HTML
	Eng, Kor string
}

type cardGridData struct {
	Cards   []cardData
	Columns int
	RowGap  int
	ColGap  int
	Padding int
}

type quizData struct {
	Chips   []string
	Cells   []template.HTML
	Columns int
	RowGap  int
	ColGap  int
}

type matchItem struct {
	Image template.HTML
	Text  string
}

type matchData struct {
	Left, Right []matchItem
	ItemHeight  int
	Gap         int
	TotalHeight int
	Pictures    bool
}

type fallbackData struct {
	Cards  []cardData
	RowGap int
}

var worksheetTemplates = template.Must(template.New("worksheet").Parse(`
{{define "page"}}<div class="worksheet-preview" style="font-family:{{.Font}};font-size:{{.FontSize}}px;line-height:1.5;">
<div class="worksheet-header" style="margin-bottom:12px;"><h2 class="title" style="margin:0;font-size:{{.TitleSize}}px;">{{.Title}}</h2></div>
{{if .PrintStyle}}<style>
@media print {
  .dup-overlay-screen { display: none !important; }
  .worksheet-preview th, .worksheet-preview td { text-align: left !important; }
}
</style>{{end}}{{.Body}}</div>{{end}}

{{define "default"}}<table style="width:100%;border-collapse:collapse;table-layout:fixed;">
<thead><tr>
<th style="width:10%;padding:8px;border-bottom:2px solid #333;text-align:left;">#</th>
<th style="width:45%;padding:8px;border-bottom:2px solid #333;text-align:left;">English</th>
<th style="width:45%;padding:8px;border-bottom:2px solid #333;text-align:left;">Korean</th>
</tr></thead>
<tbody>{{range .}}<tr>
<td style="padding:8px;border-bottom:1px solid #ddd;text-align:left;">{{.Num}}</td>
<td class="word-cell" style="position:relative;padding:8px;border-bottom:1px solid #ddd;text-align:left;">{{.Eng}}</td>
<td class="word-cell" style="position:relative;padding:8px;border-bottom:1px solid #ddd;text-align:left;">{{.Kor}}</td>
</tr>{{end}}</tbody></table>{{end}}

{{define "4col"}}<table style="width:100%;border-collapse:collapse;table-layout:fixed;">
<colgroup><col style="width:8%;"><col style="width:23%;"><col style="width:23%;"><col style="width:3%;"><col style="width:8%;"><col style="width:23%;"><col style="width:23%;"></colgroup>
<thead><tr>
<th style="padding:8px;border-bottom:2px solid #333;text-align:center;">#</th>
<th style="padding:8px;border-bottom:2px solid #333;text-align:center;">English</th>
<th style="padding:8px;border-bottom:2px solid #333;text-align:center;">Korean</th>
<th style="background:transparent;border:none;padding:0;"></th>
<th style="padding:8px;border-bottom:2px solid #333;text-align:center;">#</th>
<th style="padding:8px;border-bottom:2px solid #333;text-align:center;">English</th>
<th style="padding:8px;border-bottom:2px solid #333;text-align:center;">Korean</th>
</tr></thead>
<tbody>{{range .}}<tr>
<td style="padding:8px;border-bottom:1px solid #ddd;text-align:center;white-space:nowrap;">{{.LeftNum}}</td>
<td class="word-cell" style="position:relative;padding:8px;border-bottom:1px solid #ddd;text-align:center;">{{.LeftEng}}</td>
<td class="word-cell" style="position:relative;padding:8px;border-bottom:1px solid #ddd;text-align:center;">{{.LeftKor}}</td>
<td style="border-left:2px solid #e0e0e0;background:transparent;border-bottom:none;padding:0;"></td>
<td style="padding:8px;border-bottom:1px solid #ddd;text-align:center;white-space:nowrap;">{{.RightNum}}</td>
<td class="word-cell" style="position:relative;padding:8px;border-bottom:1px solid #ddd;text-align:center;">{{.RightEng}}</td>
<td class="word-cell" style="position:relative;padding:8px;border-bottom:1px solid #ddd;text-align:center;">{{.RightKor}}</td>
</tr>{{end}}</tbody></table>{{end}}

{{define "picture-list"}}<table style="width:100%;border-collapse:collapse;table-layout:fixed;min-width:850px;">
<colgroup><col style="width:8%;"><col style="width:30%;"><col style="width:31%;"><col style="width:31%;"></colgroup>
<thead><tr>
<th style="padding:12px 8px;border-bottom:2px solid #333;font-size:1.1em;text-align:center;font-weight:bold;">#</th>
<th style="padding:12px 8px;border-bottom:2px solid #333;font-size:1.1em;text-align:center;font-weight:bold;">Picture</th>
<th style="padding:12px 8px;border-bottom:2px solid #333;font-size:1.1em;text-align:center;font-weight:bold;">English</th>
<th style="padding:12px 8px;border-bottom:2px solid #333;font-size:1.1em;text-align:center;font-weight:bold;">Korean</th>
</tr></thead>
<tbody>{{$d := .}}{{range .Rows}}<tr style="min-height:{{$d.RowHeight}}px;">
<td style="padding:{{$d.CellPadding}}px 8px;border-bottom:1px solid #ddd;text-align:center;">{{.Num}}</td>
<td style="padding:{{$d.CellPadding}}px 8px;border-bottom:1px solid #ddd;text-align:center;"><div class="image-container" style="display:flex;align-items:center;justify-content:center;margin:0 auto;position:relative;">{{.Image}}</div></td>
<td class="word-cell" style="position:relative;padding:{{$d.CellPadding}}px 12px;border-bottom:1px solid #ddd;text-align:center;">{{.Eng}}</td>
<td class="word-cell" style="position:relative;padding:{{$d.CellPadding}}px 12px;border-bottom:1px solid #ddd;text-align:center;">{{.Kor}}</td>
</tr>{{end}}</tbody></table>{{end}}

{{define "picture-list-2col"}}<table style="width:100%;border-collapse:collapse;table-layout:fixed;min-width:950px;">
<colgroup><col style="width:6%"><col style="width:13%"><col style="width:18%"><col style="width:18%"><col style="width:2%"><col style="width:6%"><col style="width:13%"><col style="width:18%"><col style="width:18%"></colgroup>
<thead><tr>
<th style="padding:10px;border-bottom:2px solid #333;text-align:center;font-weight:700;">#</th>
<th style="padding:10px;border-bottom:2px solid #333;text-align:center;font-weight:700;">Picture</th>
<th style="padding:10px;border-bottom:2px solid #333;text-align:center;font-weight:700;">English</th>
<th style="padding:10px;border-bottom:2px solid #333;text-align:center;font-weight:700;">Korean</th>
<th style="border:none;background:transparent;"></th>
<th style="padding:10px;border-bottom:2px solid #333;text-align:center;font-weight:700;">#</th>
<th style="padding:10px;border-bottom:2px solid #333;text-align:center;font-weight:700;">Picture</th>
<th style="padding:10px;border-bottom:2px solid #333;text-align:center;font-weight:700;">English</th>
<th style="padding:10px;border-bottom:2px solid #333;text-align:center;font-weight:700;">Korean</th>
</tr></thead>
<tbody>{{range .}}<tr>
<td style="padding:8px;border-bottom:1px solid #ddd;text-align:center;">{{.LeftNum}}</td>
<td style="padding:8px;border-bottom:1px solid #ddd;text-align:center;">{{if .LeftImage}}<div class="image-container" style="display:flex;align-items:center;justify-content:center;margin:0 auto;position:relative;">{{.LeftImage}}</div>{{end}}</td>
<td class="word-cell" style="position:relative;padding:8px 10px;border-bottom:1px solid #ddd;text-align:center;">{{.LeftEng}}</td>
<td class="word-cell" style="position:relative;padding:8px 10px;border-bottom:1px solid #ddd;text-align:center;">{{.LeftKor}}</td>
<td style="border-left:2px solid #e0e0e0;border-bottom:none;"></td>
<td style="padding:8px;border-bottom:1px solid #ddd;text-align:center;">{{.RightNum}}</td>
<td style="padding:8px;border-bottom:1px solid #ddd;text-align:center;">{{if .RightImage}}<div class="image-container" style="display:flex;align-items:center;justify-content:center;margin:0 auto;position:relative;">{{.RightImage}}</div>{{end}}</td>
<td class="word-cell" style="position:relative;padding:8px 10px;border-bottom:1px solid #ddd;text-align:center;">{{.RightEng}}</td>
<td class="word-cell" style="position:relative;padding:8px 10px;border-bottom:1px solid #ddd;text-align:center;">{{.RightKor}}</td>
</tr>{{end}}</tbody></table>{{end}}

{{define "picture-cards"}}<div class="picture-cards-grid-{{.Columns}}col" style="display:grid;grid-template-columns:repeat({{.Columns}},1fr);row-gap:{{.RowGap}}px;column-gap:{{.ColGap}}px;padding:{{.Padding}}px;width:100%;margin:0 auto;place-items:center;">
{{$cols := .Columns}}{{range .Cards}}<div class="picture-card-{{$cols}}col" style="padding:10px;border:2px solid #e2e8f0;border-radius:8px;background:white;box-shadow:0 1px 3px rgba(0,0,0,0.1);display:flex;flex-direction:column;align-items:center;justify-content:center;">
<div class="image-container" style="display:flex;align-items:center;justify-content:center;width:100%;margin-bottom:8px;flex-shrink:0;">{{.Image}}</div>
<div style="width:100%;text-align:center;">
<div style="font-weight:bold;font-size:0.95em;margin-bottom:2px;word-wrap:break-word;">{{.Eng}}</div>
<div style="color:#555;font-size:0.85em;word-wrap:break-word;">{{.Kor}}</div>
</div>
</div>{{end}}</div>{{end}}

{{define "picture-quiz"}}<div class="picture-quiz-{{.Columns}}col" style="max-width:1000px;margin:0 auto;padding:20px 24px 28px;">
<style>
.quiz-underline { border-bottom: 2px solid #222; height: 22px; width: 140px; }
@media print { .quiz-underline { border-bottom-color: #000; } }
</style>
<div style="display:flex;justify-content:center;margin:6px 0 22px;">
<div class="quiz-word-bank" style="min-height:36px;max-width:720px;width:100%;border:1.5px solid #d7dbe3;border-radius:6px;background:#fff;padding:6px 8px;display:flex;flex-wrap:wrap;justify-content:center;align-items:center;">
{{range .Chips}}<span style="display:inline-block;margin:4px 6px 4px 0;padding:4px 10px;border-radius:6px;background:#f7fafc;border:1px solid #d7dbe3;color:#2e2b3f;font-weight:600;font-size:0.95em;text-align:center;word-break:break-word;max-width:140px;line-height:1.2;">{{.}}</span>{{end}}
</div>
</div>
<div style="display:grid;grid-template-columns:repeat({{.Columns}},1fr);column-gap:{{.ColGap}}px;row-gap:{{.RowGap}}px;">
{{range .Cells}}<div style="display:flex;flex-direction:column;align-items:center;justify-content:flex-start;">
<div style="margin-bottom:12px;">{{.}}</div>
<div class="quiz-underline"></div>
</div>{{end}}
</div>
</div>{{end}}

{{define "picture-matching"}}<div style="display:flex;justify-content:space-between;align-items:flex-start;max-width:800px;margin:0 auto;padding:20px;min-width:700px;">
<div style="width:35%;display:flex;flex-direction:column;justify-content:space-between;min-height:{{.TotalHeight}}px;row-gap:{{.Gap}}px;">
{{$h := .ItemHeight}}{{range .Left}}<div style="display:flex;align-items:center;justify-content:flex-end;gap:15px;height:{{$h}}px;">
{{if .Image}}<div class="image-container" style="display:flex;align-items:center;position:relative;">{{.Image}}</div>{{else}}<div style="padding:12px 16px;background:#f8f9fa;border:2px solid #e9ecef;border-radius:8px;font-weight:600;flex:1;">{{.Text}}</div>{{end}}
<div style="width:16px;height:16px;border:3px solid #333;border-radius:50%;background:white;flex-shrink:0;"></div>
</div>{{end}}
</div>
<div style="width:30%;min-height:{{.TotalHeight}}px;display:flex;align-items:center;justify-content:center;">
<div style="color:#ccc;font-size:14px;text-align:center;font-style:italic;">Draw lines<br>to connect</div>
</div>
<div style="width:35%;display:flex;flex-direction:column;justify-content:space-between;min-height:{{.TotalHeight}}px;row-gap:{{.Gap}}px;">
{{range .Right}}<div style="display:flex;align-items:center;justify-content:flex-start;gap:15px;height:{{$h}}px;">
<div style="width:16px;height:16px;border:3px solid #333;border-radius:50%;background:white;flex-shrink:0;"></div>
<div style="padding:12px 16px;background:#f8f9fa;border:2px solid #e9ecef;border-radius:8px;font-weight:600;box-shadow:0 1px 3px rgba(0,0,0,0.1);flex:1;">{{.Text}}</div>
</div>{{end}}
</div>
</div>{{end}}

{{define "eng-kor-matching"}}<div style="display:flex;justify-content:space-between;align-items:flex-start;max-width:800px;margin:0 auto;padding:20px;min-width:700px;">
<div style="width:40%;display:flex;flex-direction:column;min-height:{{.TotalHeight}}px;row-gap:{{.Gap}}px;">
{{$h := .ItemHeight}}{{range .Left}}<div style="display:flex;align-items:center;justify-content:flex-end;gap:15px;height:{{$h}}px;">
<div style="padding:10px 15px;background:#f8f9fa;border:2px solid #e9ecef;border-radius:8px;font-weight:600;box-shadow:0 1px 3px rgba(0,0,0,0.1);flex:1;">{{.Text}}</div>
<div style="width:16px;height:16px;border:3px solid #333;border-radius:50%;background:white;flex-shrink:0;"></div>
</div>{{end}}
</div>
<div style="width:20%;min-height:{{.TotalHeight}}px;display:flex;align-items:center;justify-content:center;">
<div style="color:#ccc;font-size:14px;text-align:center;font-style:italic;">Draw lines<br>to connect</div>
</div>
<div style="width:40%;display:flex;flex-direction:column;min-height:{{.TotalHeight}}px;row-gap:{{.Gap}}px;">
{{range .Right}}<div style="display:flex;align-items:center;justify-content:flex-start;gap:15px;height:{{$h}}px;">
<div style="width:16px;height:16px;border:3px solid #333;border-radius:50%;background:white;flex-shrink:0;"></div>
<div style="padding:10px 15px;background:#fff5f5;border:2px solid #fed7d7;border-radius:8px;font-weight:600;box-shadow:0 1px 3px rgba(0,0,0,0.1);flex:1;">{{.Text}}</div>
</div>{{end}}
</div>
</div>{{end}}

{{define "fallback-grid"}}<div class="word-grid" style="display:grid;grid-template-columns:repeat(auto-fit,minmax(200px,1fr));row-gap:{{.RowGap}}px;column-gap:15px;">
{{range .Cards}}<div class="word-card" style="padding:10px;border:1px solid #ccc;border-radius:8px;text-align:center;background:white;box-shadow:0 1px 3px rgba(0,0,0,0.1);">
<div style="font-weight:bold;margin-bottom:5px;">{{.Eng}}</div>
<div style="color:#666;font-size:0.9em;">{{.Kor}}</div>
</div>{{end}}</div>{{end}}
`))
