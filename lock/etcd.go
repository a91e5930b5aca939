package lock

import (
	"context"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/ceyewan/rplock/connector"
	"github.com/ceyewan/rplock/xerrors"
)

// etcdStore Etcd 后端的 Store 实现（内部使用）
//
// SetIfAbsent 通过 CreateRevision=0 的事务比较实现；
// Expire 为已存在的键授予租约，租约到期后键由 Etcd 自动删除。
type etcdStore struct {
	client *clientv3.Client
}

// NewEtcdStore 基于 Etcd 连接器创建 Store
func NewEtcdStore(conn connector.EtcdConnector) (Store, error) {
	if conn == nil {
		return nil, ErrConnectorNil
	}
	return &etcdStore{client: conn.GetClient()}, nil
}

func (s *etcdStore) SetIfAbsent(ctx context.Context, key, value string) (bool, error) {
	resp, err := s.client.Txn(ctx).
		If(clientv3.Compare(clientv3.CreateRevision(key), "=", 0)).
		Then(clientv3.OpPut(key, value)).
		Commit()
	if err != nil {
		return false, err
	}
	return resp.Succeeded, nil
}

// Expire 为键绑定租约
//
// Etcd 无法给已有键直接附加租约，这里先授予租约，再以
// ModRevision 守卫的事务用原值重写该键。守卫失败说明键在
// 此期间被并发修改，此时不做任何续期动作。
func (s *etcdStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	getResp, err := s.client.Get(ctx, key)
	if err != nil {
		return err
	}
	if len(getResp.Kvs) == 0 {
		return nil
	}
	kv := getResp.Kvs[0]

	seconds := int64(ttl / time.Second)
	if ttl%time.Second != 0 || seconds < 1 {
		// Etcd 租约粒度为秒，不足一秒向上取整
		seconds++
	}
	lease, err := s.client.Grant(ctx, seconds)
	if err != nil {
		return xerrors.Wrap(err, "grant lease")
	}

	_, err = s.client.Txn(ctx).
		If(clientv3.Compare(clientv3.ModRevision(key), "=", kv.ModRevision)).
		Then(clientv3.OpPut(key, string(kv.Value), clientv3.WithLease(lease.ID))).
		Commit()
	if err != nil {
		return xerrors.Wrap(err, "attach lease")
	}
	return nil
}

func (s *etcdStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.Delete(ctx, key)
	return err
}
