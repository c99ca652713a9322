package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/schedboard/internal/model"
	"github.com/gyeh/schedboard/internal/normalize"
)

func s(v string) *string { return &v }

func fixtureTable() *model.Table {
	return &model.Table{
		Columns: []string{"No", "사업명", "수요기관(발주처)", "캠프명", "담당자", "사업 금액(VAT포함)", "제출일"},
		Rows: [][]*string{
			{s("1"), s("교육 운영"), s("서울시"), s("A캠프"), s("김철수"), s("12000000"), s("2024.03.01")},
			{s("2"), s("캠프 기획"), nil, nil, s("이영희"), nil, s("실행중")},
			{s("3"), s("행사 대행"), nil, nil, nil, s("협의"), s("행사 2024.03.20")},
			{s("4"), nil, nil, nil, s("김철수"), nil, s("2024-03-05")},
			{s("5"), s("홍보물 제작"), nil, nil, s("김철수"), nil, nil},
			{s("6"), s("컨설팅"), nil, nil, s("박민수"), nil, s("2024-03-10 이전")},
			{s("7"), s("조사 용역"), nil, nil, s("  "), nil, s("다음 주")},
		},
	}
}

var fixedNow = time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)

func TestBuild_EndToEnd(t *testing.T) {
	chart, err := Build(fixtureTable(), DefaultOptions(), fixedNow, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, chart.Tasks, 3)
	assert.Equal(t, model.GanttTask{Label: "교육 운영", Start: "2024-02-16", Finish: "2024-03-01", Category: "김철수"}, chart.Tasks[0])
	assert.Equal(t, model.GanttTask{Label: "행사 대행", Start: "2024-03-06", Finish: "2024-03-20", Category: "Unknown"}, chart.Tasks[1])
	assert.Equal(t, model.GanttTask{Label: "컨설팅", Start: "2024-02-24", Finish: "2024-03-09", Category: "박민수"}, chart.Tasks[2])

	require.Len(t, chart.Annotations, 3)
	assert.Equal(t, "D+5", chart.Annotations[0].Text)
	assert.Equal(t, "2024-03-01", chart.Annotations[0].X)
	assert.Equal(t, 0.5, chart.Annotations[0].Y)
	assert.Equal(t, "D-14", chart.Annotations[1].Text)
	assert.Equal(t, "D-3", chart.Annotations[2].Text)

	assert.Equal(t, []string{"김철수", "Unknown", "박민수"}, chart.Categories)
	assert.Len(t, chart.Colors, 3)
	assert.NotEqual(t, chart.Colors["김철수"], chart.Colors["박민수"])

	sum := chart.Summary
	assert.Equal(t, 7, sum.RowsRead)
	assert.Equal(t, 2, sum.RowsMissing)
	assert.Equal(t, 2, sum.RowsUnresolved)
	assert.Equal(t, 3, sum.RowsRendered)
	assert.Equal(t, "사업명", sum.NameColumn)
	assert.Equal(t, "제출일", sum.EndDateColumn)
	assert.Equal(t, "담당자", sum.ManagerColumn)
	assert.NotEmpty(t, chart.RunID)
}

func TestBuild_StartBeforeEnd(t *testing.T) {
	chart, err := Build(fixtureTable(), DefaultOptions(), fixedNow, zerolog.Nop())
	require.NoError(t, err)
	for _, r := range chart.Rows {
		require.True(t, r.Resolved())
		assert.True(t, r.Start.Before(*r.End), "row %d", r.Index)
	}
}

func TestBuild_Details(t *testing.T) {
	chart, err := Build(fixtureTable(), DefaultOptions(), fixedNow, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"사업명", "수요기관(발주처)", "캠프명", "사업 금액(VAT포함)", "담당자", "시작일", "제출일"}, chart.Details.Headers)
	require.Len(t, chart.Details.Rows, 3)
	assert.Equal(t, []string{"교육 운영", "서울시", "A캠프", "12,000,000", "김철수", "2024-02-16", "2024-03-01"}, chart.Details.Rows[0])
	assert.Equal(t, "협의", chart.Details.Rows[1][3])
}

func TestBuild_MissingRequiredColumn(t *testing.T) {
	tbl := &model.Table{
		Columns: []string{"사업명", "담당자"},
		Rows:    [][]*string{{s("교육"), s("김철수")}},
	}
	_, err := Build(tbl, DefaultOptions(), fixedNow, zerolog.Nop())
	require.Error(t, err)

	var pe *PipelineError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "columns", pe.Phase)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "end_date")
}

func TestBuild_NoManagerColumn(t *testing.T) {
	tbl := &model.Table{
		Columns: []string{"사업명", "종료일"},
		Rows:    [][]*string{{s("교육"), s("2024.03.01")}},
	}
	chart, err := Build(tbl, DefaultOptions(), fixedNow, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, chart.Tasks, 1)
	assert.Equal(t, model.UnknownManager, chart.Tasks[0].Category)
	assert.Equal(t, "2024-02-16", chart.Tasks[0].Start)
	assert.Equal(t, []string{"사업명", "manager", "시작일", "종료일"}, chart.Details.Headers)
}

func TestResolveColumns_RequiredRole(t *testing.T) {
	tbl := &model.Table{Columns: []string{"사업명", "종료일"}}

	cols, err := ResolveColumns(tbl, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, -1, cols.Manager)
	assert.Equal(t, 1, cols.EndDate)

	saved := model.ManagerRole
	model.ManagerRole.Required = true
	t.Cleanup(func() { model.ManagerRole = saved })

	_, err = ResolveColumns(tbl, DefaultOptions())
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "manager")
	assert.NotContains(t, err.Error(), "end_date")
}

func TestBuild_ConfiguredSentinel(t *testing.T) {
	opts := DefaultOptions()
	opts.Resolver = normalize.NewResolver("보류")
	tbl := &model.Table{
		Columns: []string{"사업명", "제출일"},
		Rows: [][]*string{
			{s("A"), s("보류")},
			{s("B"), s("2024")},
		},
	}
	chart, err := Build(tbl, opts, fixedNow, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, chart.Tasks, 1)
	assert.Equal(t, "2024-01-01", chart.Tasks[0].Finish)
	assert.Equal(t, "2023-12-18", chart.Tasks[0].Start)
	assert.Equal(t, 1, chart.Summary.RowsUnresolved)
}

func TestNormalizeRow(t *testing.T) {
	r := normalize.NewResolver()
	row := model.ScheduleRow{Name: "x", RawEndDate: "2024.03.01", Manager: "m"}
	got := NormalizeRow(row, r, 14*24*time.Hour)
	require.True(t, got.Resolved())
	assert.Equal(t, "2024-02-16", got.Start.Format(model.DateLayout))
	assert.Equal(t, "2024-03-01", got.End.Format(model.DateLayout))

	row.RawEndDate = "사전규격"
	got = NormalizeRow(row, r, 14*24*time.Hour)
	assert.False(t, got.Resolved())
	assert.Nil(t, got.Start)
	assert.Nil(t, got.End)
}

func TestDDay(t *testing.T) {
	cases := []struct {
		end  time.Time
		want string
	}{
		{time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "D+1"},
		{time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC), "D-0"},
		{time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), "D-0"},
		{time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), "D-1"},
		{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "D+6"},
	}
	for _, tc := range cases {
		if got := DDayText(DDay(tc.end, fixedNow)); got != tc.want {
			t.Errorf("DDay(%v) = %s, want %s", tc.end, got, tc.want)
		}
	}
}

func TestDDay_IgnoresZone(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	now := time.Date(2024, 3, 5, 15, 0, 0, 0, loc)
	end := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DDay(end, now))
}
