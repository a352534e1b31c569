package chapters

// Chapter - a static subdivision of a paper, never persisted
type Chapter struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Paper string `json:"paper"`
}

const (
	FirstPaper  = "1st Paper"
	SecondPaper = "2nd Paper"
)

var firstPaperChapters = []Chapter{
	{ID: 1, Title: "হিসাববিজ্ঞান পরিচিতি", Paper: FirstPaper},
	{ID: 2, Title: "হিসাবের বইসমূহ", Paper: FirstPaper},
	{ID: 3, Title: "ব্যাংক সমন্বয় বিবরণী", Paper: FirstPaper},
	{ID: 4, Title: "রেওয়ামিল", Paper: FirstPaper},
	{ID: 5, Title: "হিসাববিজ্ঞানের নীতিমালা", Paper: FirstPaper},
	{ID: 6, Title: "প্রাপ্য হিসাবসমূহের হিসাবরক্ষণ", Paper: FirstPaper},
	{ID: 7, Title: "কার্যপত্র", Paper: FirstPaper},
	{ID: 8, Title: "দৃশ্যমান ও অদৃশ্যমান সম্পদের হিসাব", Paper: FirstPaper},
	{ID: 9, Title: "আর্থিক বিবরণী", Paper: FirstPaper},
	{ID: 10, Title: "একতরফা দাখিলা পদ্ধতি", Paper: FirstPaper},
}

var secondPaperChapters = []Chapter{
	{ID: 1, Title: "অব্যবসায়ী প্রতিষ্ঠানের হিসাব", Paper: SecondPaper},
	{ID: 2, Title: "অংশীদারি ব্যবসায়ের হিসাব", Paper: SecondPaper},
	{ID: 3, Title: "নগদ প্রবাহ বিবরণী", Paper: SecondPaper},
	{ID: 4, Title: "যৌথ মূলধনী কোম্পানির মূলধন", Paper: SecondPaper},
	{ID: 5, Title: "যৌথ মূলধনী কোম্পানির আর্থিক বিবরণী", Paper: SecondPaper},
	{ID: 6, Title: "আর্থিক বিবরণী বিশ্লেষণ", Paper: SecondPaper},
	{ID: 7, Title: "উৎপাদন ব্যয় হিসাব", Paper: SecondPaper},
	{ID: 8, Title: "মজুরি হিসাব", Paper: SecondPaper},
	{ID: 9, Title: "বাজেট ও বাজেটীয় নিয়ন্ত্রণ", Paper: SecondPaper},
}

// ForPaper returns the chapter list for the given paper. Unknown paper
// values yield ok == false instead of silently falling back to a default list.
func ForPaper(paper string) (chs []Chapter, ok bool) {
	switch paper {
	case FirstPaper:
		return firstPaperChapters, true
	case SecondPaper:
		return secondPaperChapters, true
	default:
		return nil, false
	}
}
