package service

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/vetting_radar/pkg/engine"
	"github.com/iWorld-y/vetting_radar/pkg/report"
	"github.com/iWorld-y/vetting_radar/pkg/validate"
)

// VetRequest 审查请求体
type VetRequest struct {
	CompanyName string   `json:"company_name"`
	Executives  []string `json:"executives,omitempty"`
}

// VettingService 对外提供公司审查能力的服务层
type VettingService struct {
	eng *engine.Engine
	log *log.Helper
}

func NewVettingService(eng *engine.Engine, logger log.Logger) *VettingService {
	return &VettingService{
		eng: eng,
		log: log.NewHelper(logger),
	}
}

// Vet 执行一次审查并返回组装好的报告
// 门禁拒绝以 *validate.RejectionError 形式透出，由传输层翻译状态码。
func (s *VettingService) Vet(ctx context.Context, req *VetRequest) (*report.Report, error) {
	s.log.WithContext(ctx).Infof("收到审查请求: company=%q executives=%d", req.CompanyName, len(req.Executives))

	_, rep, err := s.eng.Run(ctx, engine.RunOptions{
		CompanyName: req.CompanyName,
		Executives:  req.Executives,
	})
	if err != nil {
		var rejection *validate.RejectionError
		if errors.As(err, &rejection) {
			s.log.WithContext(ctx).Warnf("审查被拒绝 [%s]: %s", rejection.Verdict.Code, rejection.Verdict.Message)
		} else {
			s.log.WithContext(ctx).Errorf("审查执行失败: %v", err)
		}
		return nil, err
	}
	return rep, nil
}
