package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"SceneScript/internal/scriptgen/domain"
	"SceneScript/modules/kit/errx"
	"SceneScript/modules/kit/logx"
	"SceneScript/modules/kit/tracex"
)

type GenerateReq struct {
	// Document 是 JSON 场景文档。
	Document []byte
	// Root 是根节点路径，Workspace.Model 或 #id。
	Root    string
	Options domain.Options
}

type GenerateResp struct {
	ArtifactID  string              `json:"artifact_id"`
	Strategy    domain.Strategy     `json:"strategy"`
	Container   *domain.Container   `json:"container"`
	Names       map[string]string   `json:"names,omitempty"`
	Stats       domain.Stats        `json:"stats"`
	Diagnostics []domain.Diagnostic `json:"diagnostics,omitempty"`
}

// ScriptService 串起一次完整运行：载入文档、序列化、存档、记录历史。
type ScriptService struct {
	loader    SceneLoader
	ser       *Serializer
	artifacts ArtifactRepo
	history   HistoryRepo
	log       Logger
	now       func() time.Time
}

func NewScriptService(loader SceneLoader, ser *Serializer, artifacts ArtifactRepo, history HistoryRepo, log Logger) *ScriptService {
	if log == nil {
		log = logx.Nop()
	}
	return &ScriptService{
		loader:    loader,
		ser:       ser,
		artifacts: artifacts,
		history:   history,
		log:       log,
		now:       time.Now,
	}
}

func (s *ScriptService) Generate(ctx context.Context, req GenerateReq) (*GenerateResp, error) {
	runID, ok := tracex.RunIDFrom(ctx)
	if !ok {
		runID = tracex.NewRunID()
		ctx = tracex.WithRunID(ctx, runID)
	}
	if len(req.Document) == 0 {
		return nil, ErrBadRequest.WithData("field", "document")
	}

	host, root, err := s.loader.Load(ctx, req.Document, req.Root)
	if err != nil {
		return nil, ErrBadRequest.WithData("root", req.Root).WithCause(err)
	}

	res, err := s.ser.Serialize(ctx, host, root, req.Options)
	if err != nil {
		s.record(ctx, domain.RunRecord{RunId: runID, Root: req.Root, State: domain.RunFailed, ErrCode: string(errx.CodeOf(err))})
		return nil, err
	}

	artifact := domain.Artifact{
		ID:          runID,
		Root:        req.Root,
		Strategy:    res.Strategy,
		Options:     req.Options,
		Container:   res.Container,
		Stats:       res.Stats,
		Diagnostics: res.Diagnostics,
		CreatedAt:   s.now(),
	}
	if err := s.artifacts.Save(ctx, artifact); err != nil {
		return nil, ErrUnavailable.WithReason(ReasonArtifactWriteFail).WithData("run_id", runID).WithCause(err)
	}
	s.record(ctx, domain.RunRecord{
		RunId:       runID,
		Root:        req.Root,
		Strategy:    string(res.Strategy),
		State:       domain.RunSuccess,
		Serialized:  res.Stats.Serialized,
		Skipped:     res.Stats.Skipped,
		Length:      res.Stats.Length,
		Diagnostics: len(res.Diagnostics),
	})

	return &GenerateResp{
		ArtifactID:  runID,
		Strategy:    res.Strategy,
		Container:   res.Container,
		Names:       res.Names.Map(),
		Stats:       res.Stats,
		Diagnostics: res.Diagnostics,
	}, nil
}

// record 写运行历史；历史不可用不影响本次结果，只记日志。
func (s *ScriptService) record(ctx context.Context, rec domain.RunRecord) {
	if s.history == nil {
		return
	}
	rec.CTime = s.now()
	if err := s.history.Save(ctx, rec); err != nil {
		logx.ReportSysErrorWithLoggerContext(ctx, s.log,
			logx.NewSysLog("script.history", ErrUnavailable.WithReason(ReasonHistoryWriteFail).WithCause(err)),
			zap.String("run_id", rec.RunId))
	}
}

func (s *ScriptService) Get(ctx context.Context, id string) (*domain.Artifact, error) {
	if id == "" {
		return nil, ErrBadRequest.WithData("field", "id")
	}
	a, err := s.artifacts.Get(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrArtifactNotFound):
			return nil, ErrArtifactNotFound.WithData("id", id)
		default:
			return nil, ErrUnavailable.WithCause(err)
		}
	}
	return a, nil
}

// MaxHistory 是单次查询历史的条数上限。
const MaxHistory = 200

func (s *ScriptService) History(ctx context.Context, n int) ([]domain.RunRecord, error) {
	if n <= 0 || n > MaxHistory {
		n = MaxHistory
	}
	if s.history == nil {
		return nil, nil
	}
	recs, err := s.history.Recent(ctx, n)
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	return recs, nil
}
