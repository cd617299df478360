// Package baseline is a reference staged model: a multinomial naive Bayes classifier over a text column.
//
// Training runs in four stages, each checkpointed in a store so that a run can be resumed:
//
//	vocabulary   collect the tokens of the unlabeled and train texts
//	priors       estimate the log class priors from the train labels
//	likelihoods  estimate the Laplace smoothed log token likelihoods per class
//	evaluate     measure the accuracy on the train set
package baseline

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/askiada/stagedmodel/internal/store"
	"github.com/askiada/stagedmodel/pkg/stagedmodel"
	"github.com/askiada/stagedmodel/pkg/table"
)

const (
	StageVocabulary  = "vocabulary"
	StagePriors      = "priors"
	StageLikelihoods = "likelihoods"
	StageEvaluate    = "evaluate"

	stateKey = "state"

	defaultIDColumn    = "id"
	defaultTextColumn  = "text"
	defaultLabelColumn = "label"
	defaultSmoothing   = 1.0
)

var (
	ErrNotLoaded         = errors.New("model is not loaded")
	ErrNotTrained        = errors.New("model is not trained")
	ErrEmptyTrainingSet  = errors.New("training set is empty")
	ErrInvalidSmoothing  = errors.New("smoothing must be positive")
	ErrLabelColumnNeeded = errors.New("train data has no label column")
)

// state is what a checkpoint holds.
type state struct {
	Vocabulary     []string    `json:"vocabulary"`
	Classes        []string    `json:"classes"`
	LogPriors      []float64   `json:"log_priors"`
	LogLikelihoods [][]float64 `json:"log_likelihoods"`
	Accuracy       float64     `json:"accuracy"`
}

// Model is a naive Bayes text classifier implementing stagedmodel.Model.
type Model struct {
	cfg         stagedmodel.Config
	store       store.Store
	logger      *zap.Logger
	idColumn    string
	textColumn  string
	labelColumn string
	smoothing   float64

	unlabeled *table.Table
	train     *table.Table

	state      state
	tokenIndex map[string]int
}

type Option func(m *Model)

// WithIDColumn names the column holding the item ids. It defaults to "id". When a dataset has this column, it
// becomes the row index of the preprocessed dataset, so the ids end up in the submission.
func WithIDColumn(name string) Option {
	return func(m *Model) {
		m.idColumn = name
	}
}

func WithTextColumn(name string) Option {
	return func(m *Model) {
		m.textColumn = name
	}
}

func WithLabelColumn(name string) Option {
	return func(m *Model) {
		m.labelColumn = name
	}
}

// WithSmoothing sets the additive smoothing of the token counts. It defaults to 1.
func WithSmoothing(alpha float64) Option {
	return func(m *Model) {
		m.smoothing = alpha
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// New creates a model reading its data with the paths of cfg and checkpointing into st.
func New(cfg stagedmodel.Config, st store.Store, opts ...Option) (*Model, error) {
	m := &Model{
		cfg:         cfg,
		store:       st,
		logger:      zap.NewNop(),
		idColumn:    defaultIDColumn,
		textColumn:  defaultTextColumn,
		labelColumn: defaultLabelColumn,
		smoothing:   defaultSmoothing,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.smoothing <= 0 {
		return nil, errors.Wrapf(ErrInvalidSmoothing, "got %v", m.smoothing)
	}

	return m, nil
}

// Normalize lowercases s and keeps only its letters and digits, as space separated tokens.
func Normalize(s string) string {
	return strings.Join(tokenize(s), " ")
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Preprocess keeps the text column and, when present, the label column. The text is normalized. When present, the id
// column replaces the row index.
func (m *Model) Preprocess(data *table.Table) (*table.Table, error) {
	if m.idColumn != "" && data.HasColumn(m.idColumn) {
		indexed, err := data.SetIndex(m.idColumn)
		if err != nil {
			return nil, errors.Wrap(err, "unable to index by id")
		}

		data = indexed
	}

	columns := []string{m.textColumn}
	if data.HasColumn(m.labelColumn) {
		columns = append(columns, m.labelColumn)
	}

	selected, err := data.Select(columns...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to select columns")
	}

	return selected.Map(m.textColumn, Normalize)
}

func (m *Model) readPreprocessed(rel string) (*table.Table, error) {
	path, err := m.cfg.PreprocessedDataPath(rel)
	if err != nil {
		return nil, err
	}

	return table.ReadCSVFile(path)
}

// Load reads the preprocessed unlabeled and train datasets and restores the last checkpoint, if any.
func (m *Model) Load() error {
	if m.cfg.UnlabeledDataPath != "" {
		unlabeled, err := m.readPreprocessed(m.cfg.UnlabeledDataPath)
		if err != nil {
			return errors.Wrap(err, "unable to load unlabeled data")
		}
		m.unlabeled = unlabeled
	}

	train, err := m.readPreprocessed(m.cfg.TrainDataPath)
	if err != nil {
		return errors.Wrap(err, "unable to load train data")
	}

	if !train.HasColumn(m.labelColumn) {
		return errors.Wrapf(ErrLabelColumnNeeded, "column %q", m.labelColumn)
	}

	m.train = train

	var restored state

	found, err := m.store.Get(stateKey, &restored)
	if err != nil {
		return errors.Wrap(err, "unable to restore checkpoint")
	}

	if found {
		m.setState(restored)
		m.logger.Debug("checkpoint restored", zap.Int("vocabulary", len(restored.Vocabulary)), zap.Strings("classes", restored.Classes))
	}

	return nil
}

func (m *Model) setState(s state) {
	m.state = s
	m.tokenIndex = make(map[string]int, len(s.Vocabulary))

	for i, token := range s.Vocabulary {
		m.tokenIndex[token] = i
	}
}

// Save checkpoints the current state in the store.
func (m *Model) Save() error {
	return errors.Wrap(m.store.Put(stateKey, m.state), "unable to save checkpoint")
}

// Stages returns the training stages.
func (m *Model) Stages() []stagedmodel.Stage {
	return []stagedmodel.Stage{
		{Name: StageVocabulary, Action: m.buildVocabulary},
		{Name: StagePriors, Action: m.estimatePriors},
		{Name: StageLikelihoods, Action: m.estimateLikelihoods},
		{Name: StageEvaluate, Action: m.evaluate},
	}
}

func (m *Model) trainColumns() (texts, labels []string, err error) {
	if m.train == nil {
		return nil, nil, ErrNotLoaded
	}

	if m.train.Len() == 0 {
		return nil, nil, ErrEmptyTrainingSet
	}

	texts, err = m.train.Column(m.textColumn)
	if err != nil {
		return nil, nil, err
	}

	labels, err = m.train.Column(m.labelColumn)
	if err != nil {
		return nil, nil, err
	}

	return texts, labels, nil
}

func (m *Model) buildVocabulary() error {
	texts, _, err := m.trainColumns()
	if err != nil {
		return err
	}

	if m.unlabeled != nil {
		unlabeled, err := m.unlabeled.Column(m.textColumn)
		if err != nil {
			return err
		}
		texts = append(unlabeled, texts...)
	}

	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, token := range tokenize(text) {
			seen[token] = struct{}{}
		}
	}

	vocabulary := make([]string, 0, len(seen))
	for token := range seen {
		vocabulary = append(vocabulary, token)
	}

	sort.Strings(vocabulary)

	// later stages depend on the vocabulary and are reset with it
	m.setState(state{Vocabulary: vocabulary})
	m.logger.Debug("vocabulary built", zap.Int("tokens", len(vocabulary)))

	return nil
}

func (m *Model) estimatePriors() error {
	_, labels, err := m.trainColumns()
	if err != nil {
		return err
	}

	if m.state.Vocabulary == nil {
		return errors.Wrapf(ErrNotTrained, "stage %s must run before %s", StageVocabulary, StagePriors)
	}

	counts := make(map[string]float64)
	for _, label := range labels {
		counts[label]++
	}

	classes := make([]string, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}

	sort.Strings(classes)

	priors := make([]float64, len(classes))
	for i, class := range classes {
		priors[i] = counts[class]
	}

	floats.Scale(1/floats.Sum(priors), priors)
	applyLog(priors)

	m.state.Classes = classes
	m.state.LogPriors = priors
	m.state.LogLikelihoods = nil
	m.state.Accuracy = 0

	return nil
}

func (m *Model) estimateLikelihoods() error {
	texts, labels, err := m.trainColumns()
	if err != nil {
		return err
	}

	if m.state.Vocabulary == nil || m.state.Classes == nil {
		return errors.Wrapf(ErrNotTrained, "stages %s and %s must run before %s", StageVocabulary, StagePriors, StageLikelihoods)
	}

	classIndex := make(map[string]int, len(m.state.Classes))
	for i, class := range m.state.Classes {
		classIndex[class] = i
	}

	counts := make([][]float64, len(m.state.Classes))
	for i := range counts {
		counts[i] = make([]float64, len(m.state.Vocabulary))
		floats.AddConst(m.smoothing, counts[i])
	}

	for i, text := range texts {
		class, ok := classIndex[labels[i]]
		if !ok {
			return errors.Wrapf(ErrNotTrained, "label %q has no prior", labels[i])
		}

		for _, token := range tokenize(text) {
			if idx, ok := m.tokenIndex[token]; ok {
				counts[class][idx]++
			}
		}
	}

	for _, row := range counts {
		floats.Scale(1/floats.Sum(row), row)
		applyLog(row)
	}

	m.state.LogLikelihoods = counts
	m.state.Accuracy = 0

	return nil
}

func (m *Model) evaluate() error {
	texts, labels, err := m.trainColumns()
	if err != nil {
		return err
	}

	correct := make([]float64, len(texts))

	for i, text := range texts {
		predicted, err := m.predictText(text)
		if err != nil {
			return err
		}

		if predicted == labels[i] {
			correct[i] = 1
		}
	}

	m.state.Accuracy = stat.Mean(correct, nil)
	m.logger.Info("training accuracy", zap.Float64("accuracy", m.state.Accuracy), zap.Int("rows", len(texts)))

	return nil
}

// Accuracy returns the train accuracy computed by the evaluate stage.
func (m *Model) Accuracy() float64 {
	return m.state.Accuracy
}

func (m *Model) predictText(text string) (string, error) {
	if m.state.LogLikelihoods == nil {
		return "", ErrNotTrained
	}

	scores := append([]float64(nil), m.state.LogPriors...)

	for _, token := range tokenize(text) {
		idx, ok := m.tokenIndex[token]
		if !ok {
			continue
		}

		for class := range scores {
			scores[class] += m.state.LogLikelihoods[class][idx]
		}
	}

	return m.state.Classes[floats.MaxIdx(scores)], nil
}

// Predict returns the most likely class of every row.
func (m *Model) Predict(data *table.Table) ([]string, error) {
	texts, err := data.Column(m.textColumn)
	if err != nil {
		return nil, err
	}

	predictions := make([]string, len(texts))

	for i, text := range texts {
		predictions[i], err = m.predictText(text)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
	}

	return predictions, nil
}

func applyLog(values []float64) {
	for i, v := range values {
		values[i] = math.Log(v)
	}
}

var _ stagedmodel.Model = (*Model)(nil)
